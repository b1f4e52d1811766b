package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wodboard/database"
	"wodboard/realtime"
)

// laneless behaves like a schema without the lane column
type laneless struct {
	database.Store
}

func (laneless) SetTeamHeat(string, int, string) error {
	return fmt.Errorf("%w: column \"lane\" does not exist", database.ErrLaneUnsupported)
}

func (laneless) ClearHeats() (int, error) {
	return 0, database.ErrLaneUnsupported
}

func (l laneless) WithTx(fn func(database.Store) error) error {
	return l.Store.WithTx(func(tx database.Store) error {
		return fn(laneless{Store: tx})
	})
}

// flaky lets the first ok heat writes through and fails the rest
type flaky struct {
	database.Store
	ok *int
}

func (f flaky) SetTeamHeat(id string, heat int, lane string) error {
	if *f.ok == 0 {
		return errors.New("connection reset by peer")
	}
	*f.ok--
	return f.Store.SetTeamHeat(id, heat, lane)
}

func (f flaky) WithTx(fn func(database.Store) error) error {
	return f.Store.WithTx(func(tx database.Store) error {
		return fn(flaky{Store: tx, ok: f.ok})
	})
}

func TestGenerateAssignsEveryTeam(t *testing.T) {
	svc, events := newTestServices(t, newTestStore(t))
	for i := 0; i < 7; i++ {
		mustTeam(t, svc, fmt.Sprintf("Team %d", i))
	}

	result, err := svc.Heats.Generate("9:30")
	require.NoError(t, err)
	assert.Equal(t, 7, result.Assigned)
	assert.Equal(t, 3, result.TotalHeats)
	assert.Equal(t, "09:30", result.StartTime)
	assert.False(t, result.LaneFallback)

	teams, err := svc.Teams.List()
	require.NoError(t, err)
	perHeat := map[int]int{}
	for _, team := range teams {
		require.NotZero(t, team.HeatNumber(), team.Name)
		assert.NotEmpty(t, team.LaneLabel())
		perHeat[team.HeatNumber()]++
	}
	assert.Equal(t, map[int]int{1: 3, 2: 2, 3: 2}, perHeat)

	clock, err := svc.Heats.StartTime()
	require.NoError(t, err)
	assert.Equal(t, "09:30", clock)
	assert.Contains(t, events.types(), realtime.EventHeatsAssigned)
}

func TestGenerateDefaultsAndValidation(t *testing.T) {
	svc, _ := newTestServices(t, newTestStore(t))

	_, err := svc.Heats.Generate("")
	assert.ErrorIs(t, err, ErrEmptyRoster)

	mustTeam(t, svc, "Solo")
	result, err := svc.Heats.Generate("")
	require.NoError(t, err)
	assert.Equal(t, "08:00", result.StartTime)
	assert.Equal(t, 1, result.TotalHeats)

	_, err = svc.Heats.Generate("25:00")
	assert.True(t, IsValidation(err))
}

func TestGenerateFallsBackWithoutLaneColumn(t *testing.T) {
	store := newTestStore(t)
	svc, _ := newTestServices(t, laneless{Store: store})
	for i := 0; i < 4; i++ {
		mustTeam(t, svc, fmt.Sprintf("Team %d", i))
	}

	result, err := svc.Heats.Generate("08:00")
	require.NoError(t, err)
	assert.True(t, result.LaneFallback)
	assert.Equal(t, 4, result.Assigned)

	teams, err := store.ListTeams()
	require.NoError(t, err)
	for _, team := range teams {
		assert.NotZero(t, team.HeatNumber())
		assert.Nil(t, team.Lane)
	}

	cleared, err := svc.Heats.Reset()
	require.NoError(t, err)
	assert.Equal(t, 4, cleared)
}

func TestGenerateIsAtomic(t *testing.T) {
	store := newTestStore(t)
	svc, _ := newTestServices(t, store)
	for i := 0; i < 6; i++ {
		mustTeam(t, svc, fmt.Sprintf("Team %d", i))
	}

	ok := 3
	broken, events := newTestServices(t, flaky{Store: store, ok: &ok})
	_, err := broken.Heats.Generate("11:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	teams, err := store.ListTeams()
	require.NoError(t, err)
	for _, team := range teams {
		assert.Nil(t, team.Heat, team.Name)
		assert.Nil(t, team.Lane, team.Name)
	}
	_, err = store.GetStartTime()
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.NotContains(t, events.types(), realtime.EventHeatsAssigned)
}

func TestResetClearsHeatsAndStartTime(t *testing.T) {
	svc, events := newTestServices(t, newTestStore(t))
	for i := 0; i < 5; i++ {
		mustTeam(t, svc, fmt.Sprintf("Team %d", i))
	}
	_, err := svc.Heats.Generate("10:00")
	require.NoError(t, err)

	cleared, err := svc.Heats.Reset()
	require.NoError(t, err)
	assert.Equal(t, 5, cleared)

	teams, err := svc.Teams.List()
	require.NoError(t, err)
	for _, team := range teams {
		assert.Nil(t, team.Heat)
		assert.Nil(t, team.Lane)
	}

	clock, err := svc.Heats.StartTime()
	require.NoError(t, err)
	assert.Equal(t, "08:00", clock)

	cleared, err = svc.Heats.Reset()
	require.NoError(t, err)
	assert.Zero(t, cleared)
	assert.Contains(t, events.types(), realtime.EventHeatsReset)
}

func TestSetStartTime(t *testing.T) {
	svc, _ := newTestServices(t, newTestStore(t))

	clock, err := svc.Heats.SetStartTime("7:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", clock)

	_, err = svc.Heats.SetStartTime("noon")
	assert.True(t, IsValidation(err))
}

func TestOverviewBuildsSchedule(t *testing.T) {
	svc, _ := newTestServices(t, newTestStore(t))
	for i := 0; i < 4; i++ {
		mustTeam(t, svc, fmt.Sprintf("Team %d", i))
	}
	mustWorkout(t, svc, "First", true)
	mustWorkout(t, svc, "Second", false)

	overview, err := svc.Heats.Overview()
	require.NoError(t, err)
	assert.False(t, overview.Stats.HasHeats)
	assert.Empty(t, overview.Schedule)
	assert.Equal(t, "08:00", overview.StartTime)

	_, err = svc.Heats.Generate("08:00")
	require.NoError(t, err)

	overview, err = svc.Heats.Overview()
	require.NoError(t, err)
	assert.Equal(t, 2, overview.Stats.TotalHeats)
	require.Len(t, overview.Schedule, 2)

	var windows []string
	for _, ws := range overview.Schedule {
		for _, h := range ws.Heats {
			windows = append(windows, h.Start.Format("15:04")+"-"+h.End.Format("15:04"))
			assert.Equal(t, 2026, h.Start.Year())
		}
	}
	assert.Equal(t, []string{"08:00-08:10", "08:15-08:25", "08:35-08:45", "08:50-09:00"}, windows)
}
