// services/workout_service.go - Workout management and per-workout views
package services

import (
	"fmt"
	"strings"

	"wodboard/database"
	"wodboard/log"
	"wodboard/models"
	"wodboard/realtime"
	"wodboard/utils"
)

type WorkoutService struct {
	store  database.Store
	events realtime.Publisher
}

func NewWorkoutService(store database.Store, events realtime.Publisher) *WorkoutService {
	return &WorkoutService{store: store, events: events}
}

// WorkoutInput carries the editable workout fields. A nil Number on create
// takes the next free number.
type WorkoutInput struct {
	Name        string `json:"name" yaml:"name"`
	Number      *int   `json:"workout_number" yaml:"number"`
	Description string `json:"description" yaml:"description"`
	IsVisible   bool   `json:"is_visible" yaml:"visible"`
}

func (in WorkoutInput) normalize() (WorkoutInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return in, invalid("workout name is required")
	}
	if len(in.Name) > maxNameLength {
		return in, invalid("workout name must be at most %d characters", maxNameLength)
	}
	if in.Number != nil && *in.Number < 1 {
		return in, invalid("workout number must be positive")
	}
	return in, nil
}

// ================== WORKOUT CRUD OPERATIONS ==================

// List returns every workout, hidden ones included, ordered by number
func (s *WorkoutService) List() ([]models.Workout, error) {
	return s.store.ListWorkouts()
}

func (s *WorkoutService) Get(id string) (*models.Workout, error) {
	return s.store.GetWorkout(id)
}

func (s *WorkoutService) Create(in WorkoutInput) (*models.Workout, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	number := 0
	if in.Number != nil {
		number = *in.Number
	} else {
		highest, err := s.store.MaxWorkoutNumber()
		if err != nil {
			return nil, err
		}
		number = highest + 1
	}

	workout := &models.Workout{
		Name:        in.Name,
		Number:      number,
		Description: in.Description,
		IsVisible:   in.IsVisible,
	}
	if err := s.store.CreateWorkout(workout); err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	log.WithWorkoutID(workout.ID).Info().Str("name", workout.Name).Int("number", workout.Number).Msg("Workout created")
	s.refresh()
	s.events.Publish(realtime.NewEvent(realtime.EventWorkoutCreated, "workout_id", workout.ID))
	return workout, nil
}

func (s *WorkoutService) Update(id string, in WorkoutInput) (*models.Workout, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	workout, err := s.store.GetWorkout(id)
	if err != nil {
		return nil, err
	}
	workout.Name = in.Name
	workout.Description = in.Description
	workout.IsVisible = in.IsVisible
	if in.Number != nil {
		workout.Number = *in.Number
	}

	if err := s.store.UpdateWorkout(workout); err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}

	s.refresh()
	s.events.Publish(realtime.NewEvent(realtime.EventWorkoutUpdated, "workout_id", id))
	return s.store.GetWorkout(id)
}

// SetVisibility shows or hides a workout on the public views
func (s *WorkoutService) SetVisibility(id string, visible bool) (*models.Workout, error) {
	if err := s.store.SetWorkoutVisibility(id, visible); err != nil {
		return nil, err
	}

	log.WithWorkoutID(id).Info().Bool("visible", visible).Msg("Workout visibility changed")
	s.refresh()
	s.events.Publish(realtime.NewEvent(realtime.EventWorkoutUpdated, "workout_id", id))
	return s.store.GetWorkout(id)
}

// Delete removes the workout and all of its results
func (s *WorkoutService) Delete(id string) error {
	err := s.store.WithTx(func(tx database.Store) error {
		if _, err := tx.GetWorkout(id); err != nil {
			return err
		}
		if err := tx.DeleteResultsByWorkout(id); err != nil {
			return fmt.Errorf("failed to delete workout results: %w", err)
		}
		return tx.DeleteWorkout(id)
	})
	if err != nil {
		return err
	}

	log.WithWorkoutID(id).Info().Msg("Workout deleted")
	s.refresh()
	s.events.Publish(realtime.NewEvent(realtime.EventWorkoutDeleted, "workout_id", id))
	return nil
}

// ================== VIEWS ==================

// Summaries returns every workout with its completion stats. Hidden
// workouts are listed without stats unless includeHidden is set.
func (s *WorkoutService) Summaries(includeHidden bool) ([]models.WorkoutSummary, error) {
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, err
	}
	teams, err := s.store.ListTeams()
	if err != nil {
		return nil, err
	}
	results, err := s.store.ListResults()
	if err != nil {
		return nil, err
	}

	byWorkout := make(map[string][]models.Result)
	for _, r := range results {
		byWorkout[r.WorkoutID] = append(byWorkout[r.WorkoutID], r)
	}

	summaries := make([]models.WorkoutSummary, 0, len(workouts))
	for _, w := range workouts {
		summary := models.WorkoutSummary{Workout: w, TotalTeams: len(teams)}
		if w.IsVisible || includeHidden {
			workoutResults := byWorkout[w.ID]
			summary.CompletedTeams = len(workoutResults)
			if len(teams) > 0 {
				summary.CompletionRate = roundDiv(len(workoutResults)*100, len(teams))
			}
			summary.Fastest = fastestResult(workoutResults)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Detail returns a workout with its results in finishing order. Hidden
// workouts are reported as not found unless includeHidden is set.
func (s *WorkoutService) Detail(id string, includeHidden bool) (*models.WorkoutDetail, error) {
	workout, err := s.store.GetWorkout(id)
	if err != nil {
		return nil, err
	}
	if !workout.IsVisible && !includeHidden {
		return nil, database.ErrNotFound
	}

	results, err := s.store.ListResultsByWorkout(id)
	if err != nil {
		return nil, err
	}
	teams, err := s.store.ListTeams()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	detail := &models.WorkoutDetail{Workout: *workout, Results: make([]models.WorkoutStanding, 0, len(results))}
	total := 0
	for i, r := range results {
		detail.Results = append(detail.Results, models.WorkoutStanding{
			Position:    i + 1,
			ResultID:    r.ID,
			TeamID:      r.TeamID,
			TeamName:    names[r.TeamID],
			TimeSeconds: r.TimeSeconds,
			Elapsed:     utils.FormatElapsed(r.TimeSeconds),
			Points:      r.Points,
		})
		total += r.TimeSeconds
	}
	if len(results) > 0 {
		detail.AverageSeconds = roundDiv(total, len(results))
		detail.FastestSeconds = results[0].TimeSeconds
	}
	return detail, nil
}

func (s *WorkoutService) refresh() {
	if err := RefreshGauges(s.store); err != nil {
		log.WithComponent("workouts").Warn().Err(err).Msg("Failed to refresh gauges")
	}
}

func fastestResult(results []models.Result) *models.Result {
	var fastest *models.Result
	for i := range results {
		if fastest == nil || results[i].TimeSeconds < fastest.TimeSeconds {
			fastest = &results[i]
		}
	}
	return fastest
}

// roundDiv divides rounding half up
func roundDiv(a, b int) int {
	return (a*2 + b) / (2 * b)
}
