// Package scoring turns elapsed workout times into leaderboard points.
//
// Points follow finishing position: first place earns MaxPoints and each
// later place one point less, never dropping below MinPoints. Ties keep the
// first-recorded entry ahead.
package scoring

import (
	"cmp"
	"slices"
)

const (
	MaxPoints = 20
	MinPoints = 1
)

// Entry is a recorded time awaiting points
type Entry struct {
	ID          string
	TimeSeconds int
}

// Award is the points and 1-based position computed for an Entry
type Award struct {
	ID       string
	Points   int
	Position int
}

// PointsFor returns the points earned at a 1-based finishing position
func PointsFor(position int) int {
	return max(MinPoints, MaxPoints+1-position)
}

// ComputePoints returns the points a new time earns against the times
// already recorded for the same workout. An equal existing time ranks
// ahead of the new one.
func ComputePoints(existing []int, newTime int) int {
	position := 1
	for _, t := range existing {
		if t <= newTime {
			position++
		}
	}
	return PointsFor(position)
}

// RecomputeAllPoints ranks every entry of one workout by ascending time and
// returns the full corrected award set in ranked order. Entries with equal
// times keep their input order, so callers pass them in recording order.
func RecomputeAllPoints(entries []Entry) []Award {
	if len(entries) == 0 {
		return nil
	}

	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		return cmp.Compare(a.TimeSeconds, b.TimeSeconds)
	})

	awards := make([]Award, len(ranked))
	for i, e := range ranked {
		awards[i] = Award{ID: e.ID, Points: PointsFor(i + 1), Position: i + 1}
	}
	return awards
}

// PointsByID flattens awards into a lookup keyed by entry ID
func PointsByID(awards []Award) map[string]int {
	points := make(map[string]int, len(awards))
	for _, a := range awards {
		points[a.ID] = a.Points
	}
	return points
}
