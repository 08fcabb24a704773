package reminder

import (
	"strconv"
	"strings"
	"time"

	"wellmind/schedule"
	"wellmind/storage"
)

// Preview is what the UI shows for one category: which periods cover this
// moment and when the next send can happen. HasNext is false when nothing in
// the mapping can fire within the search horizon.
type Preview struct {
	Active  []string
	Next    time.Time
	HasNext bool
}

// PreviewCategory evaluates a category without sending anything.
func (s *Scheduler) PreviewCategory(user, category string) (*Preview, error) {
	loc := s.userLocation(user)
	now := s.clk.Now().In(loc)

	mapping, err := s.store.Periods(user, category)
	if err != nil {
		return nil, err
	}

	nowMin := now.Hour()*60 + now.Minute()
	next, ok := schedule.NextEligible(mapping, now, s.log)
	return &Preview{
		Active:  schedule.ActiveNow(mapping, nowMin, now.Weekday().String(), s.log),
		Next:    next,
		HasNext: ok,
	}, nil
}

// RunNow forces one evaluation-and-send cycle for a category, regardless of
// what is queued. It returns the selected period name, or ok=false when no
// period is active right now.
func (s *Scheduler) RunNow(user, category string) (string, bool, error) {
	loc := s.userLocation(user)
	now := s.clk.Now().In(loc)

	mapping, err := s.store.Periods(user, category)
	if err != nil {
		return "", false, err
	}

	nowMin := now.Hour()*60 + now.Minute()
	name, ok := schedule.SelectForSend(mapping, nowMin, now.Weekday().String(), s.rng, s.log)
	if !ok {
		return "", false, nil
	}

	s.deliver(user, category, name)
	return name, true, nil
}

func formatTaskList(tasks []storage.Task) string {
	var sb strings.Builder
	sb.WriteString("Still on your list:\n")
	for i, t := range tasks {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(t.Name)
		if t.Note != "" {
			sb.WriteString(" - ")
			sb.WriteString(t.Note)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
