package storage

import (
	"errors"
	"fmt"
	"strings"

	"wellmind/schedule"
)

// CategoryCheckin and CategoryTasks are the two built-in period categories;
// everything else is a user-defined message category.
const (
	CategoryCheckin = "checkin"
	CategoryTasks   = "tasks"
)

var (
	ErrReservedPeriod = errors.New("the ALL period cannot be changed")
	ErrNoUndo         = errors.New("nothing to restore")
)

type undoEntry struct {
	name   string
	period schedule.RawPeriod
}

func scheduleFile(category string) string {
	return "schedules_" + category + ".json"
}

func undoKey(user, category string) string {
	return user + "/" + category
}

// Periods returns the period mapping for one (user, category) pair.
// A user that never configured the category gets an empty mapping, which the
// evaluator reports as "nothing eligible".
func (s *Store) Periods(user, category string) (map[string]schedule.RawPeriod, error) {
	if err := checkName(category); err != nil {
		return nil, err
	}
	mapping := make(map[string]schedule.RawPeriod)
	err := s.loadJSON(user, scheduleFile(category), &mapping)
	if errors.Is(err, ErrNotFound) {
		return mapping, nil
	}
	if err != nil {
		return nil, err
	}
	return mapping, nil
}

// SetPeriods validates and replaces the whole mapping. Any structurally
// invalid period blocks the save.
func (s *Store) SetPeriods(user, category string, mapping map[string]schedule.RawPeriod) error {
	if err := checkName(category); err != nil {
		return err
	}
	for name, raw := range mapping {
		if err := schedule.Validate(name, raw); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return s.saveJSON(user, scheduleFile(category), mapping)
}

// EnsureDefaultPeriods seeds a category with the reserved ALL period the
// first time it is enabled.
func (s *Store) EnsureDefaultPeriods(user, category string) error {
	mapping, err := s.Periods(user, category)
	if err != nil {
		return err
	}
	if len(mapping) > 0 {
		return nil
	}
	mapping[schedule.All] = schedule.AllPeriod()
	return s.SetPeriods(user, category, mapping)
}

// UpdatePeriod creates or replaces one period. The reserved ALL period is
// fixed to mean "always" and cannot be redefined.
func (s *Store) UpdatePeriod(user, category, name string, raw schedule.RawPeriod) error {
	if strings.EqualFold(name, schedule.All) {
		return ErrReservedPeriod
	}
	if err := schedule.Validate(name, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	mapping, err := s.Periods(user, category)
	if err != nil {
		return err
	}
	mapping[name] = raw
	return s.saveJSON(user, scheduleFile(category), mapping)
}

// DeletePeriod removes one period, keeping it for a single-level undo.
func (s *Store) DeletePeriod(user, category, name string) error {
	if strings.EqualFold(name, schedule.All) {
		return ErrReservedPeriod
	}
	mapping, err := s.Periods(user, category)
	if err != nil {
		return err
	}
	raw, ok := mapping[name]
	if !ok {
		return fmt.Errorf("%w: period %q", ErrNotFound, name)
	}
	delete(mapping, name)
	if err := s.saveJSON(user, scheduleFile(category), mapping); err != nil {
		return err
	}

	s.mux.Lock()
	s.undo[undoKey(user, category)] = undoEntry{name: name, period: raw}
	s.mux.Unlock()
	return nil
}

// RestoreDeletedPeriod puts back the most recently deleted period of the
// category. Only one level of undo is kept.
func (s *Store) RestoreDeletedPeriod(user, category string) (string, error) {
	key := undoKey(user, category)

	s.mux.Lock()
	entry, ok := s.undo[key]
	if ok {
		delete(s.undo, key)
	}
	s.mux.Unlock()

	if !ok {
		return "", ErrNoUndo
	}
	mapping, err := s.Periods(user, category)
	if err != nil {
		return "", err
	}
	mapping[entry.name] = entry.period
	if err := s.saveJSON(user, scheduleFile(category), mapping); err != nil {
		return "", err
	}
	return entry.name, nil
}

// Categories lists every category the user has a schedule for, built-ins
// included once enabled.
func (s *Store) Categories(user string) ([]string, error) {
	prefs, err := s.Preferences(user)
	if err != nil {
		return nil, err
	}
	categories := append([]string(nil), prefs.Categories...)
	if prefs.CheckinEnabled {
		categories = append(categories, CategoryCheckin)
	}
	if prefs.TaskRemindersEnabled {
		categories = append(categories, CategoryTasks)
	}
	return categories, nil
}
