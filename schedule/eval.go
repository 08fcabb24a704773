package schedule

import (
	"sort"

	"go.uber.org/zap"
)

// Rand supplies the randomness for period selection. Callers inject it so
// selection is deterministic under test; math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// ActiveAt reports whether the period covers the given moment. Boundaries are
// inclusive on both ends; start == end is a single-minute window. A period
// whose end precedes its start wraps past midnight. The day-set is matched
// against the current weekday only: a Monday 22:00-02:00 period is live on
// Monday 23:30 but not on Tuesday 01:00.
func (p Period) ActiveAt(nowMin int, weekday string) bool {
	if !p.Active {
		return false
	}
	if !p.Days.Matches(weekday) {
		return false
	}
	if p.Start <= p.End {
		return p.Start <= nowMin && nowMin <= p.End
	}
	return nowMin >= p.Start || nowMin <= p.End
}

// normalizeAll converts a raw mapping to canonical periods in name order.
// A period that fails to normalize is skipped with a warning so a single
// malformed entry never blocks its siblings.
func normalizeAll(mapping map[string]RawPeriod, log *zap.SugaredLogger) []Period {
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	periods := make([]Period, 0, len(names))
	for _, name := range names {
		p, err := Normalize(name, mapping[name])
		if err != nil {
			if log != nil {
				log.Warnw("skipping malformed period", "period", name, "err", err)
			}
			continue
		}
		periods = append(periods, p)
	}
	return periods
}

// ActiveNow returns the names of the periods covering the given moment, in
// name order. An empty mapping yields an empty result.
func ActiveNow(mapping map[string]RawPeriod, nowMin int, weekday string, log *zap.SugaredLogger) []string {
	var names []string
	for _, p := range normalizeAll(mapping, log) {
		if p.ActiveAt(nowMin, weekday) {
			names = append(names, p.Name)
		}
	}
	return names
}

// SelectForSend picks one currently-active period uniformly at random.
// It returns false when nothing is active, which callers treat as "skip this
// send cycle", not as an error.
func SelectForSend(mapping map[string]RawPeriod, nowMin int, weekday string, rng Rand, log *zap.SugaredLogger) (string, bool) {
	names := ActiveNow(mapping, nowMin, weekday, log)
	if len(names) == 0 {
		return "", false
	}
	return names[rng.Intn(len(names))], true
}
