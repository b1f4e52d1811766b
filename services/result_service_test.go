package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wodboard/database"
	"wodboard/realtime"
)

func TestRecordRecomputesWholeWorkout(t *testing.T) {
	svc, events := newTestServices(t, newTestStore(t))
	a := mustTeam(t, svc, "Alpha")
	b := mustTeam(t, svc, "Bravo")
	c := mustTeam(t, svc, "Charlie")
	w := mustWorkout(t, svc, "Fran", true)

	first := mustRecord(t, svc, a, w, 130)
	assert.Equal(t, 20, first.Points)

	second := mustRecord(t, svc, b, w, 95)
	assert.Equal(t, 20, second.Points)

	third := mustRecord(t, svc, c, w, 140)
	assert.Equal(t, 18, third.Points)

	assert.Equal(t, map[string]int{a.ID: 19, b.ID: 20, c.ID: 18}, pointsByTeam(t, svc, w.ID))
	assert.Contains(t, events.types(), realtime.EventResultCreated)
	assert.Contains(t, events.types(), realtime.EventPointsRecomputed)
}

func TestRecordTieKeepsFirstRecordedAhead(t *testing.T) {
	svc, _ := newTestServices(t, newTestStore(t))
	a := mustTeam(t, svc, "Alpha")
	b := mustTeam(t, svc, "Bravo")
	w := mustWorkout(t, svc, "Grace", true)

	mustRecord(t, svc, a, w, 100)
	late := mustRecord(t, svc, b, w, 100)

	assert.Equal(t, 19, late.Points)
	assert.Equal(t, map[string]int{a.ID: 20, b.ID: 19}, pointsByTeam(t, svc, w.ID))
}

func TestRecordRejectsDuplicate(t *testing.T) {
	svc, _ := newTestServices(t, newTestStore(t))
	a := mustTeam(t, svc, "Alpha")
	w := mustWorkout(t, svc, "Helen", true)

	mustRecord(t, svc, a, w, 300)
	_, err := svc.Results.Record(RecordInput{TeamID: a.ID, WorkoutID: w.ID, TimeSeconds: 200})
	assert.ErrorIs(t, err, ErrDuplicateResult)

	results, err := svc.Results.ListByWorkout(w.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 300, results[0].TimeSeconds)
}

func TestRecordValidation(t *testing.T) {
	svc, _ := newTestServices(t, newTestStore(t))
	a := mustTeam(t, svc, "Alpha")
	w := mustWorkout(t, svc, "Isabel", true)

	tests := []struct {
		name string
		in   RecordInput
	}{
		{name: "zero time", in: RecordInput{TeamID: a.ID, WorkoutID: w.ID, TimeSeconds: 0}},
		{name: "negative time", in: RecordInput{TeamID: a.ID, WorkoutID: w.ID, TimeSeconds: -5}},
		{name: "missing team", in: RecordInput{WorkoutID: w.ID, TimeSeconds: 60}},
		{name: "unknown team", in: RecordInput{TeamID: "nope", WorkoutID: w.ID, TimeSeconds: 60}},
		{name: "unknown workout", in: RecordInput{TeamID: a.ID, WorkoutID: "nope", TimeSeconds: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Results.Record(tt.in)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}

	all, err := svc.Results.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteResultRecomputes(t *testing.T) {
	svc, events := newTestServices(t, newTestStore(t))
	a := mustTeam(t, svc, "Alpha")
	b := mustTeam(t, svc, "Bravo")
	c := mustTeam(t, svc, "Charlie")
	w := mustWorkout(t, svc, "Jackie", true)

	fastest := mustRecord(t, svc, a, w, 80)
	mustRecord(t, svc, b, w, 90)
	mustRecord(t, svc, c, w, 100)

	require.NoError(t, svc.Results.Delete(fastest.ID))
	assert.Equal(t, map[string]int{b.ID: 20, c.ID: 19}, pointsByTeam(t, svc, w.ID))
	assert.Contains(t, events.types(), realtime.EventResultDeleted)

	assert.ErrorIs(t, svc.Results.Delete(fastest.ID), database.ErrNotFound)
}

func TestRecomputeRepairsStalePoints(t *testing.T) {
	store := newTestStore(t)
	svc, _ := newTestServices(t, store)
	a := mustTeam(t, svc, "Alpha")
	w := mustWorkout(t, svc, "Karen", true)
	r := mustRecord(t, svc, a, w, 400)

	require.NoError(t, store.UpdatePoints(map[string]int{r.ID: 3}))
	require.NoError(t, svc.Results.Recompute(w.ID))
	assert.Equal(t, map[string]int{a.ID: 20}, pointsByTeam(t, svc, w.ID))
}
