package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsFor(t *testing.T) {
	tests := []struct {
		position int
		want     int
	}{
		{1, 20},
		{2, 19},
		{10, 11},
		{20, 1},
		{21, 1},
		{45, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("position %d", tt.position), func(t *testing.T) {
			assert.Equal(t, tt.want, PointsFor(tt.position))
		})
	}
}

func TestComputePoints(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		newTime  int
		want     int
	}{
		{name: "first result", existing: nil, newTime: 300, want: 20},
		{name: "fastest so far", existing: []int{130, 140}, newTime: 95, want: 20},
		{name: "middle", existing: []int{95, 140}, newTime: 130, want: 19},
		{name: "slowest", existing: []int{95, 130}, newTime: 140, want: 18},
		{name: "tie ranks behind existing", existing: []int{100}, newTime: 100, want: 19},
		{name: "floor at one", existing: make25(60), newTime: 120, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePoints(tt.existing, tt.newTime))
		})
	}
}

func make25(seconds int) []int {
	times := make([]int, 25)
	for i := range times {
		times[i] = seconds
	}
	return times
}

func TestRecomputeAllPointsOrdersByTime(t *testing.T) {
	awards := RecomputeAllPoints([]Entry{
		{ID: "r1", TimeSeconds: 130},
		{ID: "r2", TimeSeconds: 95},
		{ID: "r3", TimeSeconds: 140},
	})

	require.Len(t, awards, 3)
	assert.Equal(t, Award{ID: "r2", Points: 20, Position: 1}, awards[0])
	assert.Equal(t, Award{ID: "r1", Points: 19, Position: 2}, awards[1])
	assert.Equal(t, Award{ID: "r3", Points: 18, Position: 3}, awards[2])
}

func TestRecomputeAllPointsTiesKeepInputOrder(t *testing.T) {
	awards := RecomputeAllPoints([]Entry{
		{ID: "early", TimeSeconds: 100},
		{ID: "late", TimeSeconds: 100},
		{ID: "fast", TimeSeconds: 90},
	})

	points := PointsByID(awards)
	assert.Equal(t, 20, points["fast"])
	assert.Equal(t, 19, points["early"])
	assert.Equal(t, 18, points["late"])
}

func TestRecomputeAllPointsProperties(t *testing.T) {
	entries := make([]Entry, 30)
	for i := range entries {
		entries[i] = Entry{ID: fmt.Sprintf("r%d", i), TimeSeconds: 600 - (i*37)%500}
	}

	awards := RecomputeAllPoints(entries)
	require.Len(t, awards, len(entries))

	assert.Equal(t, MaxPoints, awards[0].Points)
	assert.Equal(t, MinPoints, awards[len(awards)-1].Points)
	for i := 1; i < len(awards); i++ {
		assert.LessOrEqual(t, awards[i].Points, awards[i-1].Points)
		assert.GreaterOrEqual(t, awards[i].Points, MinPoints)
	}

	// Feeding the ranked output back in yields the same awards
	reranked := make([]Entry, len(awards))
	byID := make(map[string]int, len(entries))
	for _, e := range entries {
		byID[e.ID] = e.TimeSeconds
	}
	for i, a := range awards {
		reranked[i] = Entry{ID: a.ID, TimeSeconds: byID[a.ID]}
	}
	assert.Equal(t, awards, RecomputeAllPoints(reranked))
}

func TestRecomputeAllPointsDoesNotMutateInput(t *testing.T) {
	entries := []Entry{{ID: "b", TimeSeconds: 200}, {ID: "a", TimeSeconds: 100}}
	RecomputeAllPoints(entries)
	assert.Equal(t, "b", entries[0].ID)
}

func TestRecomputeAllPointsEmpty(t *testing.T) {
	assert.Nil(t, RecomputeAllPoints(nil))
}
