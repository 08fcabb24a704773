package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	p, err := Normalize("Evening", RawPeriod{
		Start:  "6:00 PM",
		End:    "20:00",
		Active: true,
		Days:   []string{"monday", "FRIDAY"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Evening", p.Name)
	assert.Equal(t, 1080, p.Start)
	assert.Equal(t, 1200, p.End)
	assert.True(t, p.Active)
	assert.Equal(t, []string{"Monday", "Friday"}, p.Days.Labels())
}

func TestNormalizeIdempotent(t *testing.T) {
	raws := []RawPeriod{
		{Start: "22:00", End: "02:00", Active: true, Days: []string{"ALL"}},
		{Start: "9:15 AM", End: "5:45 pm", Active: false, Days: []string{"sunday", "Wednesday", "saturday"}},
	}
	for _, raw := range raws {
		once, err := Normalize("p", raw)
		require.NoError(t, err)
		twice, err := Normalize("p", once.Raw())
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  RawPeriod
	}{
		{"bad start", RawPeriod{Start: "25:00", End: "10:00", Days: []string{"ALL"}}},
		{"bad end", RawPeriod{Start: "10:00", End: "later", Days: []string{"ALL"}}},
		{"empty days", RawPeriod{Start: "10:00", End: "11:00", Days: nil}},
		{"unknown day", RawPeriod{Start: "10:00", End: "11:00", Days: []string{"Funday"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate("p", tc.raw)
			require.Error(t, err)
		})
	}
}

func TestDaySetMatches(t *testing.T) {
	all := DaySet{All: {}}
	for _, w := range weekdays {
		assert.True(t, all.Matches(w))
	}

	// explicit all-seven list is equivalent for matching, not normalized away
	p, err := Normalize("p", RawPeriod{Start: "00:00", End: "23:59", Active: true, Days: weekdays})
	require.NoError(t, err)
	for _, w := range weekdays {
		assert.True(t, p.Days.Matches(w))
	}
	assert.Len(t, p.Days, 7)

	mon := DaySet{"Monday": {}}
	assert.True(t, mon.Matches("monday"))
	assert.True(t, mon.Matches("MONDAY"))
	assert.False(t, mon.Matches("Tuesday"))
	assert.False(t, mon.Matches("not a day"))
}
