package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimeFormat = errors.New("invalid time format")

// clockLayouts are the accepted wall-clock spellings: 24-hour HH:MM and
// 12-hour H:MM AM/PM with or without the space.
var clockLayouts = []string{"15:04", "3:04 PM", "3:04PM"}

// ParseClock parses a wall-clock time into minutes since midnight (0..1439).
func ParseClock(s string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

// FormatClock is the inverse of ParseClock: zero-padded 24-hour HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
