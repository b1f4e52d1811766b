// services/result_service.go - Result recording and point recomputation
package services

import (
	"errors"
	"fmt"
	"strings"

	"wodboard/database"
	"wodboard/log"
	"wodboard/metrics"
	"wodboard/models"
	"wodboard/realtime"
	"wodboard/scoring"
)

type ResultService struct {
	store  database.Store
	events realtime.Publisher
}

func NewResultService(store database.Store, events realtime.Publisher) *ResultService {
	return &ResultService{store: store, events: events}
}

// RecordInput is a time submitted by the judges
type RecordInput struct {
	TeamID      string
	WorkoutID   string
	TimeSeconds int
}

// ================== RESULT OPERATIONS ==================

// Record stores a new result and recomputes the points of every result of
// the same workout in one transaction
func (s *ResultService) Record(in RecordInput) (*models.Result, error) {
	in.TeamID = strings.TrimSpace(in.TeamID)
	in.WorkoutID = strings.TrimSpace(in.WorkoutID)

	if in.TeamID == "" || in.WorkoutID == "" {
		metrics.ResultsRejected.WithLabelValues("invalid").Inc()
		return nil, invalid("team and workout are required")
	}
	if in.TimeSeconds <= 0 {
		metrics.ResultsRejected.WithLabelValues("invalid").Inc()
		return nil, invalid("time must be greater than zero")
	}

	var created models.Result
	err := s.store.WithTx(func(tx database.Store) error {
		if _, err := tx.GetTeam(in.TeamID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return invalid("team %s does not exist", in.TeamID)
			}
			return err
		}
		if _, err := tx.GetWorkout(in.WorkoutID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return invalid("workout %s does not exist", in.WorkoutID)
			}
			return err
		}

		if _, err := tx.FindResult(in.TeamID, in.WorkoutID); err == nil {
			return ErrDuplicateResult
		} else if !errors.Is(err, database.ErrNotFound) {
			return err
		}

		existing, err := tx.ListResultsByWorkout(in.WorkoutID)
		if err != nil {
			return err
		}
		times := make([]int, len(existing))
		for i, r := range existing {
			times[i] = r.TimeSeconds
		}

		created = models.Result{
			TeamID:      in.TeamID,
			WorkoutID:   in.WorkoutID,
			TimeSeconds: in.TimeSeconds,
			Points:      scoring.ComputePoints(times, in.TimeSeconds),
		}
		if err := tx.CreateResult(&created); err != nil {
			return fmt.Errorf("failed to create result: %w", err)
		}

		points, err := recomputeWorkout(tx, in.WorkoutID)
		if err != nil {
			return err
		}
		created.Points = points[created.ID]
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateResult):
			metrics.ResultsRejected.WithLabelValues("duplicate").Inc()
		case IsValidation(err):
			metrics.ResultsRejected.WithLabelValues("invalid").Inc()
		}
		return nil, err
	}

	metrics.ResultsRecorded.Inc()
	log.WithWorkoutID(in.WorkoutID).Info().
		Str("team_id", in.TeamID).
		Int("time_seconds", in.TimeSeconds).
		Int("points", created.Points).
		Msg("Result recorded")

	s.events.Publish(realtime.NewEvent(realtime.EventResultCreated,
		"result_id", created.ID, "team_id", created.TeamID, "workout_id", created.WorkoutID))
	s.events.Publish(realtime.NewEvent(realtime.EventPointsRecomputed, "workout_id", created.WorkoutID))
	return &created, nil
}

// Delete removes a result and recomputes the remaining points of its workout
func (s *ResultService) Delete(id string) error {
	var workoutID string
	err := s.store.WithTx(func(tx database.Store) error {
		result, err := tx.GetResult(id)
		if err != nil {
			return err
		}
		workoutID = result.WorkoutID

		if err := tx.DeleteResult(id); err != nil {
			return err
		}
		_, err = recomputeWorkout(tx, workoutID)
		return err
	})
	if err != nil {
		return err
	}

	log.WithWorkoutID(workoutID).Info().Str("result_id", id).Msg("Result deleted")
	s.events.Publish(realtime.NewEvent(realtime.EventResultDeleted, "result_id", id, "workout_id", workoutID))
	s.events.Publish(realtime.NewEvent(realtime.EventPointsRecomputed, "workout_id", workoutID))
	return nil
}

// Recompute rewrites the points of one workout from its recorded times
func (s *ResultService) Recompute(workoutID string) error {
	err := s.store.WithTx(func(tx database.Store) error {
		_, err := recomputeWorkout(tx, workoutID)
		return err
	})
	if err == nil {
		s.events.Publish(realtime.NewEvent(realtime.EventPointsRecomputed, "workout_id", workoutID))
	}
	return err
}

func (s *ResultService) List() ([]models.Result, error) {
	return s.store.ListResults()
}

func (s *ResultService) ListByWorkout(workoutID string) ([]models.Result, error) {
	return s.store.ListResultsByWorkout(workoutID)
}

// recomputeWorkout ranks every result of a workout and persists the full
// point set. Returns the points keyed by result ID.
func recomputeWorkout(tx database.Store, workoutID string) (map[string]int, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.PointsRecomputeDuration)

	results, err := tx.ListResultsByWorkout(workoutID)
	if err != nil {
		return nil, err
	}

	entries := make([]scoring.Entry, len(results))
	for i, r := range results {
		entries[i] = scoring.Entry{ID: r.ID, TimeSeconds: r.TimeSeconds}
	}
	points := scoring.PointsByID(scoring.RecomputeAllPoints(entries))

	if err := tx.UpdatePoints(points); err != nil {
		return nil, fmt.Errorf("failed to persist points for workout %s: %w", workoutID, err)
	}
	return points, nil
}
