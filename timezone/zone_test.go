package timezone

import (
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	loc, err := Resolve("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	_, err = Resolve("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestResolveOrUTC(t *testing.T) {
	loc, err := ResolveOrUTC("Nowhere/Atlantis")
	assert.Error(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = ResolveOrUTC("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestLocalNow(t *testing.T) {
	clk := clock.NewFake()
	// 2026-08-31 15:30 UTC is a Monday
	clk.Set(time.Date(2026, time.August, 31, 15, 30, 0, 0, time.UTC))

	min, weekday, err := LocalNow(clk, "UTC")
	require.NoError(t, err)
	assert.Equal(t, 15*60+30, min)
	assert.Equal(t, "Monday", weekday)

	// UTC+9, crosses midnight into Tuesday
	min, weekday, err = LocalNow(clk, "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, 30, min)
	assert.Equal(t, "Tuesday", weekday)

	_, _, err = LocalNow(clk, "bogus")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
