// services/ranking_service.go - Overall leaderboard
package services

import (
	"cmp"
	"slices"

	"wodboard/database"
	"wodboard/models"
)

type RankingService struct {
	store database.Store
}

func NewRankingService(store database.Store) *RankingService {
	return &RankingService{store: store}
}

// Rankings totals every team's points over all of its results. Hidden
// workouts still count towards the totals but are left out of the
// per-workout breakdown unless includeHidden is set. Teams with equal
// totals keep name order.
func (s *RankingService) Rankings(includeHidden bool) ([]models.RankingEntry, error) {
	teams, err := s.store.ListTeams()
	if err != nil {
		return nil, err
	}
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, err
	}
	results, err := s.store.ListResults()
	if err != nil {
		return nil, err
	}

	shown := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.IsVisible || includeHidden {
			shown = append(shown, w)
		}
	}

	type total struct{ points, completed int }
	totals := make(map[string]total, len(teams))
	for _, r := range results {
		t := totals[r.TeamID]
		t.points += r.Points
		t.completed++
		totals[r.TeamID] = t
	}

	// position of each result within its workout, by points
	byWorkout := make(map[string][]models.Result)
	for _, r := range results {
		byWorkout[r.WorkoutID] = append(byWorkout[r.WorkoutID], r)
	}
	type key struct{ team, workout string }
	placed := make(map[key]models.Result)
	position := make(map[string]int, len(results))
	for workoutID, rs := range byWorkout {
		slices.SortStableFunc(rs, func(a, b models.Result) int {
			return cmp.Compare(b.Points, a.Points)
		})
		for i, r := range rs {
			position[r.ID] = i + 1
			placed[key{r.TeamID, workoutID}] = r
		}
	}

	entries := make([]models.RankingEntry, 0, len(teams))
	for _, t := range teams {
		entry := models.RankingEntry{
			TeamID:            t.ID,
			TeamName:          t.Name,
			AvatarURL:         t.AvatarURL,
			Members:           t.Members(),
			TotalPoints:       totals[t.ID].points,
			CompletedWorkouts: totals[t.ID].completed,
			Workouts:          make([]models.WorkoutPlacement, 0, len(shown)),
		}
		for _, w := range shown {
			placement := models.WorkoutPlacement{
				WorkoutID:     w.ID,
				WorkoutName:   w.Name,
				WorkoutNumber: w.Number,
			}
			if r, ok := placed[key{t.ID, w.ID}]; ok {
				placement.TimeSeconds = r.TimeSeconds
				placement.Points = r.Points
				placement.Position = position[r.ID]
			}
			entry.Workouts = append(entry.Workouts, placement)
		}
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(a, b models.RankingEntry) int {
		return cmp.Compare(b.TotalPoints, a.TotalPoints)
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}
