package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// All is the reserved sentinel: as a period name it means "the entire day,
// every day"; inside a day list it means "every day".
const All = "ALL"

var ErrInvalidPeriod = errors.New("invalid period")

var weekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// RawPeriod is the wire shape of a period, as the on-disk JSON schema stores
// it. Start and end are wall-clock strings, days are weekday labels or the
// single sentinel "ALL".
type RawPeriod struct {
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Active bool     `json:"active"`
	Days   []string `json:"days"`
}

// Period is the canonical in-memory form: minutes since midnight and a
// normalized day-set.
type Period struct {
	Name   string
	Start  int
	End    int
	Active bool
	Days   DaySet
}

// DaySet holds title-case weekday labels, or the single sentinel All.
// A set containing All and a set listing all seven weekdays match the same
// days; both spellings are accepted and neither is rewritten into the other.
type DaySet map[string]struct{}

// Matches reports whether the set covers the given weekday. Matching is
// case-insensitive; All covers every day.
func (d DaySet) Matches(weekday string) bool {
	if _, ok := d[All]; ok {
		return true
	}
	label, err := normalizeDay(weekday)
	if err != nil {
		return false
	}
	_, ok := d[label]
	return ok
}

// Labels returns the set's members in deterministic order, for serializing
// back to the wire shape.
func (d DaySet) Labels() []string {
	if _, ok := d[All]; ok {
		return []string{All}
	}
	labels := make([]string, 0, len(d))
	for _, w := range weekdays {
		if _, ok := d[w]; ok {
			labels = append(labels, w)
		}
	}
	// unknown members can't exist after normalization, but don't drop them
	if len(labels) < len(d) {
		labels = labels[:0]
		for l := range d {
			labels = append(labels, l)
		}
		sort.Strings(labels)
	}
	return labels
}

func normalizeDay(label string) (string, error) {
	s := strings.TrimSpace(label)
	if strings.EqualFold(s, All) {
		return All, nil
	}
	for _, w := range weekdays {
		if strings.EqualFold(s, w) {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: unknown day %q", ErrInvalidPeriod, label)
}

// Normalize parses a raw period into its canonical form. It is idempotent:
// normalizing the canonical form's Raw() yields the same Period.
func Normalize(name string, raw RawPeriod) (Period, error) {
	start, err := ParseClock(raw.Start)
	if err != nil {
		return Period{}, fmt.Errorf("period %q: start: %w", name, err)
	}
	end, err := ParseClock(raw.End)
	if err != nil {
		return Period{}, fmt.Errorf("period %q: end: %w", name, err)
	}
	if len(raw.Days) == 0 {
		return Period{}, fmt.Errorf("%w: period %q has an empty day set", ErrInvalidPeriod, name)
	}
	days := make(DaySet, len(raw.Days))
	for _, d := range raw.Days {
		label, err := normalizeDay(d)
		if err != nil {
			return Period{}, fmt.Errorf("period %q: %w", name, err)
		}
		days[label] = struct{}{}
	}
	return Period{Name: name, Start: start, End: end, Active: raw.Active, Days: days}, nil
}

// Validate checks a raw period without keeping the canonical value.
func Validate(name string, raw RawPeriod) error {
	_, err := Normalize(name, raw)
	return err
}

// Raw converts a canonical period back to the wire shape.
func (p Period) Raw() RawPeriod {
	return RawPeriod{
		Start:  FormatClock(p.Start),
		End:    FormatClock(p.End),
		Active: p.Active,
		Days:   p.Days.Labels(),
	}
}

// AllPeriod is the reserved always-active period seeded for every new
// category: whole day, every day.
func AllPeriod() RawPeriod {
	return RawPeriod{Start: "00:00", End: "23:59", Active: true, Days: []string{All}}
}
