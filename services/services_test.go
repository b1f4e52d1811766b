package services

import (
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wodboard/database"
	"wodboard/models"
	"wodboard/realtime"
)

type recorder struct {
	mu     sync.Mutex
	events []*realtime.Event
}

func (r *recorder) Publish(event *realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) types() []realtime.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]realtime.EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

var competitionDay = time.Date(2026, 3, 14, 6, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *database.BoltStore {
	t.Helper()
	store, err := database.NewBoltStore(filepath.Join(t.TempDir(), "wodboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServices(t *testing.T, store database.Store) (*Services, *recorder) {
	t.Helper()
	events := &recorder{}
	svc := New(store, events, Options{
		Location: time.UTC,
		Rand:     rand.New(rand.NewSource(1)),
		Now:      func() time.Time { return competitionDay },
	})
	return svc, events
}

func mustTeam(t *testing.T, svc *Services, name string) *models.Team {
	t.Helper()
	team, err := svc.Teams.Create(TeamInput{Name: name})
	require.NoError(t, err)
	return team
}

func mustWorkout(t *testing.T, svc *Services, name string, visible bool) *models.Workout {
	t.Helper()
	w, err := svc.Workouts.Create(WorkoutInput{Name: name, IsVisible: visible})
	require.NoError(t, err)
	return w
}

func mustRecord(t *testing.T, svc *Services, team *models.Team, workout *models.Workout, seconds int) *models.Result {
	t.Helper()
	r, err := svc.Results.Record(RecordInput{TeamID: team.ID, WorkoutID: workout.ID, TimeSeconds: seconds})
	require.NoError(t, err)
	return r
}

func pointsByTeam(t *testing.T, svc *Services, workoutID string) map[string]int {
	t.Helper()
	results, err := svc.Results.ListByWorkout(workoutID)
	require.NoError(t, err)
	points := make(map[string]int, len(results))
	for _, r := range results {
		points[r.TeamID] = r.Points
	}
	return points
}
