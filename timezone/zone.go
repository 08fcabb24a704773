package timezone

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmhodges/clock"
)

var ErrInvalidTimezone = errors.New("invalid time zone")

// Resolve looks up an IANA zone name (e.g. "America/New_York").
func Resolve(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// ResolveOrUTC is the recovery policy for bad user config: fall back to UTC
// and let the caller log the warning. The scheduler must never crash on an
// unrecognized zone.
func ResolveOrUTC(name string) (*time.Location, error) {
	loc, err := Resolve(name)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

// LocalNow resolves "now" in the given zone and returns the clock-minute
// (minutes since midnight) together with the weekday label, "Sunday" through
// "Saturday".
func LocalNow(clk clock.Clock, name string) (int, string, error) {
	loc, err := Resolve(name)
	if err != nil {
		return 0, "", err
	}
	now := clk.Now().In(loc)
	return now.Hour()*60 + now.Minute(), now.Weekday().String(), nil
}
