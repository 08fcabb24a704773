package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellmind/schedule"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestPeriodsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	mapping := map[string]schedule.RawPeriod{
		"Evening": {Start: "18:00", End: "20:00", Active: true, Days: []string{"ALL"}},
		"Night":   {Start: "22:00", End: "02:00", Active: false, Days: []string{"Monday", "Friday"}},
	}
	require.NoError(t, s.SetPeriods("alice", "motivation", mapping))

	got, err := s.Periods("alice", "motivation")
	require.NoError(t, err)
	assert.Equal(t, mapping, got)
}

func TestPeriodsMissingCategory(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Periods("alice", "motivation")
	require.NoError(t, err)
	assert.Empty(t, got, "an unconfigured category reads as an empty mapping")
}

func TestSetPeriodsValidates(t *testing.T) {
	s := newTestStore(t)
	err := s.SetPeriods("alice", "motivation", map[string]schedule.RawPeriod{
		"Broken": {Start: "25:00", End: "10:00", Active: true, Days: []string{"ALL"}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := s.Periods("alice", "motivation")
	require.NoError(t, err)
	assert.Empty(t, got, "a failed save must not write anything")
}

func TestEnsureDefaultPeriods(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureDefaultPeriods("alice", CategoryCheckin))

	got, err := s.Periods("alice", CategoryCheckin)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, schedule.AllPeriod(), got[schedule.All])

	// seeding again leaves an edited mapping alone
	require.NoError(t, s.UpdatePeriod("alice", CategoryCheckin, "Morning",
		schedule.RawPeriod{Start: "08:00", End: "09:00", Active: true, Days: []string{"ALL"}}))
	require.NoError(t, s.EnsureDefaultPeriods("alice", CategoryCheckin))
	got, err = s.Periods("alice", CategoryCheckin)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAllPeriodIsProtected(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureDefaultPeriods("alice", "motivation"))

	err := s.UpdatePeriod("alice", "motivation", "all",
		schedule.RawPeriod{Start: "10:00", End: "11:00", Active: true, Days: []string{"ALL"}})
	assert.ErrorIs(t, err, ErrReservedPeriod)

	err = s.DeletePeriod("alice", "motivation", "ALL")
	assert.ErrorIs(t, err, ErrReservedPeriod)
}

func TestDeleteAndRestorePeriod(t *testing.T) {
	s := newTestStore(t)
	raw := schedule.RawPeriod{Start: "18:00", End: "20:00", Active: true, Days: []string{"Sunday"}}
	require.NoError(t, s.UpdatePeriod("alice", "motivation", "Evening", raw))

	require.NoError(t, s.DeletePeriod("alice", "motivation", "Evening"))
	got, err := s.Periods("alice", "motivation")
	require.NoError(t, err)
	assert.Empty(t, got)

	name, err := s.RestoreDeletedPeriod("alice", "motivation")
	require.NoError(t, err)
	assert.Equal(t, "Evening", name)

	got, err = s.Periods("alice", "motivation")
	require.NoError(t, err)
	assert.Equal(t, raw, got["Evening"])

	// single-level undo only
	_, err = s.RestoreDeletedPeriod("alice", "motivation")
	assert.ErrorIs(t, err, ErrNoUndo)
}

func TestPreferencesValidation(t *testing.T) {
	s := newTestStore(t)

	err := s.SetPreferences("alice", &Preferences{Timezone: "Atlantis/Underwater"})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.SetPreferences("alice", &Preferences{Timezone: "Europe/Berlin", Email: "not-an-address"})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.SetPreferences("alice", &Preferences{Timezone: "Europe/Berlin", Channels: []string{"pigeon"}})
	assert.ErrorIs(t, err, ErrValidation)

	want := &Preferences{
		Timezone:       "Europe/Berlin",
		Email:          "alice@example.com",
		Channels:       []string{"email", "telegram"},
		Categories:     []string{"motivation"},
		CheckinEnabled: true,
	}
	require.NoError(t, s.SetPreferences("alice", want))

	got, err := s.Preferences("alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCategories(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetPreferences("alice", &Preferences{
		Timezone:             "UTC",
		Categories:           []string{"motivation", "gratitude"},
		CheckinEnabled:       true,
		TaskRemindersEnabled: true,
	}))

	cats, err := s.Categories("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"motivation", "gratitude", CategoryCheckin, CategoryTasks}, cats)
}

func TestMessagesCRUD(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddMessage("alice", "motivation", "You can do it"))
	require.NoError(t, s.AddMessage("alice", "motivation", "One step at a time"))
	assert.ErrorIs(t, s.AddMessage("alice", "motivation", "   "), ErrValidation)

	msgs, err := s.Messages("alice", "motivation")
	require.NoError(t, err)
	assert.Equal(t, []string{"You can do it", "One step at a time"}, msgs)

	require.NoError(t, s.DeleteMessage("alice", "motivation", 0))
	msgs, err = s.Messages("alice", "motivation")
	require.NoError(t, err)
	assert.Equal(t, []string{"One step at a time"}, msgs)

	assert.ErrorIs(t, s.DeleteMessage("alice", "motivation", 5), ErrNotFound)
}

func TestTasksCRUD(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddTask("alice", Task{Name: "stretch"}))
	require.NoError(t, s.AddTask("alice", Task{Name: "water", Note: "2 liters"}))
	assert.ErrorIs(t, s.AddTask("alice", Task{}), ErrValidation)

	require.NoError(t, s.CompleteTask("alice", 0))
	pending, err := s.PendingTasks("alice")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "water", pending[0].Name)

	require.NoError(t, s.DeleteTask("alice", 1))
	tasks, err := s.Tasks("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Done)
}

func TestBadNames(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Periods("../alice", "motivation")
	assert.ErrorIs(t, err, ErrBadName)
	_, err = s.Periods("alice", "../../etc")
	assert.ErrorIs(t, err, ErrBadName)
}
