package schedule

import (
	"time"

	"go.uber.org/zap"
)

// searchHorizonDays bounds the forward scan so a period that can never fire
// terminates the search instead of looping.
const searchHorizonDays = 7

// entryMinutes lists the minutes at which the period can switch on during a
// matching day: its start minute, plus midnight for wraparound tails.
func (p Period) entryMinutes() []int {
	if p.Start <= p.End {
		return []int{p.Start}
	}
	return []int{0, p.Start}
}

// NextEligible computes the earliest instant, no more than seven days ahead,
// at which some period in the mapping is active. The caller must pass now
// already resolved into the user's time zone; period clock-times are wall
// clock in that same zone. If a period is active at now, now itself is
// returned. The second result is false when nothing can fire within the
// horizon (empty mapping, everything inactive, unreachable day-sets).
func NextEligible(mapping map[string]RawPeriod, now time.Time, log *zap.SugaredLogger) (time.Time, bool) {
	periods := normalizeAll(mapping, log)

	nowMin := now.Hour()*60 + now.Minute()
	weekday := now.Weekday().String()
	for _, p := range periods {
		if p.ActiveAt(nowMin, weekday) {
			return now, true
		}
	}

	var best time.Time
	for _, p := range periods {
		if !p.Active {
			continue
		}
		for d := 0; d <= searchHorizonDays; d++ {
			day := now.AddDate(0, 0, d)
			if !p.Days.Matches(day.Weekday().String()) {
				continue
			}
			for _, m := range p.entryMinutes() {
				c := time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, now.Location())
				if c.Before(now) {
					continue
				}
				if best.IsZero() || c.Before(best) {
					best = c
				}
			}
		}
	}
	if best.IsZero() {
		return time.Time{}, false
	}
	return best, true
}
