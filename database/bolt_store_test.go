package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wodboard/models"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreTeams(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		require.NoError(t, store.CreateTeam(&models.Team{Name: name}))
	}

	teams, err := store.ListTeams()
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, "Alpha", teams[0].Name)
	assert.Equal(t, "Zeta", teams[2].Name)
	assert.NotEmpty(t, teams[0].ID)

	alpha := teams[0]
	alpha.Name = "Alpha Prime"
	alpha.Member1 = "Ana"
	require.NoError(t, store.UpdateTeam(&alpha))

	got, err := store.GetTeam(alpha.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Prime", got.Name)
	assert.Equal(t, []string{"Ana"}, got.Members())

	require.NoError(t, store.DeleteTeam(alpha.ID))
	_, err = store.GetTeam(alpha.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteTeam(alpha.ID), ErrNotFound)
}

func TestBoltStoreHeats(t *testing.T) {
	store := newTestStore(t)

	a := &models.Team{Name: "A"}
	b := &models.Team{Name: "B"}
	c := &models.Team{Name: "C"}
	for _, team := range []*models.Team{a, b, c} {
		require.NoError(t, store.CreateTeam(team))
	}

	require.NoError(t, store.SetTeamHeat(a.ID, 1, "A"))
	require.NoError(t, store.SetTeamHeat(b.ID, 1, ""))
	assert.ErrorIs(t, store.SetTeamHeat("missing", 1, "A"), ErrNotFound)

	got, err := store.GetTeam(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.HeatNumber())
	assert.Equal(t, "A", got.LaneLabel())

	got, err = store.GetTeam(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.HeatNumber())
	assert.Nil(t, got.Lane)

	cleared, err := store.ClearHeats()
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	teams, err := store.ListTeams()
	require.NoError(t, err)
	for _, team := range teams {
		assert.Nil(t, team.Heat)
		assert.Nil(t, team.Lane)
	}

	cleared, err = store.ClearHeats()
	require.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestBoltStoreWorkouts(t *testing.T) {
	store := newTestStore(t)

	n, err := store.MaxWorkoutNumber()
	require.NoError(t, err)
	assert.Zero(t, n)

	w2 := &models.Workout{Name: "Row", Number: 2}
	w1 := &models.Workout{Name: "Burpees", Number: 1}
	require.NoError(t, store.CreateWorkout(w2))
	require.NoError(t, store.CreateWorkout(w1))

	workouts, err := store.ListWorkouts()
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Equal(t, w1.ID, workouts[0].ID)

	n, err = store.MaxWorkoutNumber()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, store.SetWorkoutVisibility(w1.ID, true))
	got, err := store.GetWorkout(w1.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVisible)

	require.NoError(t, store.DeleteWorkout(w2.ID))
	assert.ErrorIs(t, store.SetWorkoutVisibility(w2.ID, true), ErrNotFound)
}

func TestBoltStoreResultsKeepRecordingOrderOnTies(t *testing.T) {
	store := newTestStore(t)

	inputs := []struct {
		team string
		secs int
	}{
		{"t1", 120}, {"t2", 90}, {"t3", 120}, {"t4", 60},
	}
	var ids []string
	for _, in := range inputs {
		r := &models.Result{TeamID: in.team, WorkoutID: "w1", TimeSeconds: in.secs}
		require.NoError(t, store.CreateResult(r))
		ids = append(ids, r.ID)
	}
	require.NoError(t, store.CreateResult(&models.Result{TeamID: "t1", WorkoutID: "w2", TimeSeconds: 10}))

	results, err := store.ListResultsByWorkout("w1")
	require.NoError(t, err)
	require.Len(t, results, 4)

	var order []string
	for _, r := range results {
		order = append(order, r.TeamID)
	}
	assert.Equal(t, []string{"t4", "t2", "t1", "t3"}, order)

	all, err := store.ListResults()
	require.NoError(t, err)
	assert.Len(t, all, 5)

	found, err := store.FindResult("t3", "w1")
	require.NoError(t, err)
	assert.Equal(t, ids[2], found.ID)

	_, err = store.FindResult("t3", "w2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, store.CreateResult(&models.Result{TeamID: "t1", WorkoutID: "w1", TimeSeconds: 50}))
}

func TestBoltStoreResultDeletes(t *testing.T) {
	store := newTestStore(t)

	for _, r := range []*models.Result{
		{TeamID: "t1", WorkoutID: "w1", TimeSeconds: 100},
		{TeamID: "t1", WorkoutID: "w2", TimeSeconds: 100},
		{TeamID: "t2", WorkoutID: "w1", TimeSeconds: 90},
	} {
		require.NoError(t, store.CreateResult(r))
	}

	workoutIDs, err := store.DeleteResultsByTeam("t1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"w1", "w2"}, workoutIDs)

	require.NoError(t, store.DeleteResultsByWorkout("w1"))
	all, err := store.ListResults()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBoltStoreUpdatePoints(t *testing.T) {
	store := newTestStore(t)

	r := &models.Result{TeamID: "t1", WorkoutID: "w1", TimeSeconds: 100}
	require.NoError(t, store.CreateResult(r))
	require.NoError(t, store.UpdatePoints(map[string]int{r.ID: 17}))

	got, err := store.GetResult(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Points)

	assert.ErrorIs(t, store.UpdatePoints(map[string]int{"missing": 1}), ErrNotFound)
}

func TestBoltStoreStartTime(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetStartTime()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.PutStartTime("09:30"))
	clock, err := store.GetStartTime()
	require.NoError(t, err)
	assert.Equal(t, "09:30", clock)

	require.NoError(t, store.ClearStartTime())
	_, err = store.GetStartTime()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStoreAdminKeepsPasswordHash(t *testing.T) {
	store := newTestStore(t)

	admin := &models.Admin{Username: "judge", PasswordHash: "hash"}
	require.NoError(t, store.CreateAdmin(admin))
	assert.NotZero(t, admin.ID)
	assert.Error(t, store.CreateAdmin(&models.Admin{Username: "judge", PasswordHash: "x"}))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.TouchAdminLogin(admin.ID, now))

	got, err := store.GetAdminByUsername("judge")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)
	require.NotNil(t, got.LastLogin)
	assert.True(t, now.Equal(*got.LastLogin))

	_, err = store.GetAdminByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStoreWithTxRollsBack(t *testing.T) {
	store := newTestStore(t)
	boom := errors.New("boom")

	err := store.WithTx(func(tx Store) error {
		require.NoError(t, tx.CreateTeam(&models.Team{Name: "Ghost"}))
		teams, err := tx.ListTeams()
		require.NoError(t, err)
		assert.Len(t, teams, 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	teams, err := store.ListTeams()
	require.NoError(t, err)
	assert.Empty(t, teams)
}
