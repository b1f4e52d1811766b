// services/heat_service.go - Heat assignment and timetable
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"wodboard/config"
	"wodboard/database"
	"wodboard/heats"
	"wodboard/log"
	"wodboard/metrics"
	"wodboard/realtime"
	"wodboard/utils"
)

type HeatService struct {
	store     database.Store
	events    realtime.Publisher
	groupSize int
	location  *time.Location
	timing    heats.Timing
	rng       *rand.Rand
	now       func() time.Time
}

func NewHeatService(store database.Store, events realtime.Publisher, opts Options) *HeatService {
	return &HeatService{
		store:     store,
		events:    events,
		groupSize: opts.GroupSize,
		location:  opts.Location,
		timing:    opts.Timing,
		rng:       opts.Rand,
		now:       opts.Now,
	}
}

// GenerateResult reports what an assignment run did
type GenerateResult struct {
	Assigned     int                `json:"assigned"`
	TotalHeats   int                `json:"total_heats"`
	StartTime    string             `json:"start_time"`
	LaneFallback bool               `json:"lane_fallback"`
	Assignments  []heats.Assignment `json:"assignments"`
}

// Overview is the public heats view
type Overview struct {
	Stats     heats.Stats             `json:"stats"`
	StartTime string                  `json:"start_time"`
	Schedule  []heats.WorkoutSchedule `json:"schedule"`
}

// Generate shuffles every team into heats and stores the start time. An
// empty startTime keeps the default. Assignments and the start time are
// written in one transaction. Returns ErrEmptyRoster when there is nobody
// to assign.
func (s *HeatService) Generate(startTime string) (*GenerateResult, error) {
	clock := config.DefaultStartTime
	if startTime != "" {
		normalized, err := utils.NormalizeClock(startTime)
		if err != nil {
			return nil, invalid("%v", err)
		}
		clock = normalized
	}

	teams, err := s.store.ListTeams()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}

	assignments := heats.Assign(ids, s.groupSize, s.rng)
	if len(assignments) == 0 {
		return nil, ErrEmptyRoster
	}

	logger := log.WithComponent("heats")
	result := &GenerateResult{StartTime: clock}
	err = s.store.WithTx(func(tx database.Store) error {
		laneless := false
		for _, a := range assignments {
			var err error
			if !laneless {
				err = tx.SetTeamHeat(a.TeamID, a.Heat, a.Lane)
				if errors.Is(err, database.ErrLaneUnsupported) {
					logger.Warn().Err(err).Msg("Lane column missing, saving heat numbers only")
					laneless = true
				}
			}
			if laneless {
				err = tx.SetTeamHeatNumber(a.TeamID, a.Heat)
			}
			if err != nil {
				return fmt.Errorf("failed to assign team %s: %w", a.TeamID, err)
			}
			result.Assigned++
			result.TotalHeats = max(result.TotalHeats, a.Heat)
		}
		result.LaneFallback = laneless

		if err := tx.PutStartTime(clock); err != nil {
			return fmt.Errorf("failed to save start time: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Assignments = assignments
	if result.LaneFallback {
		metrics.LaneFallbacks.Inc()
	}

	metrics.HeatsAssigned.Set(float64(result.TotalHeats))
	logger.Info().
		Int("teams", result.Assigned).
		Int("heats", result.TotalHeats).
		Str("start_time", clock).
		Msg("Heats generated")
	s.events.Publish(realtime.NewEvent(realtime.EventHeatsAssigned, "start_time", clock))
	return result, nil
}

// Reset clears every heat and lane and forgets the start time. Returns the
// number of teams cleared.
func (s *HeatService) Reset() (int, error) {
	cleared, err := s.store.ClearHeats()
	if errors.Is(err, database.ErrLaneUnsupported) {
		metrics.LaneFallbacks.Inc()
		cleared, err = s.store.ClearHeatNumbers()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear heats: %w", err)
	}
	if err := s.store.ClearStartTime(); err != nil {
		return 0, fmt.Errorf("failed to clear start time: %w", err)
	}

	metrics.HeatsAssigned.Set(0)
	log.WithComponent("heats").Info().Int("teams", cleared).Msg("Heats reset")
	s.events.Publish(realtime.NewEvent(realtime.EventHeatsReset))
	return cleared, nil
}

// SetStartTime stores a new competition start time
func (s *HeatService) SetStartTime(value string) (string, error) {
	clock, err := utils.NormalizeClock(value)
	if err != nil {
		return "", invalid("%v", err)
	}
	if err := s.store.PutStartTime(clock); err != nil {
		return "", err
	}
	s.events.Publish(realtime.NewEvent(realtime.EventHeatsAssigned, "start_time", clock))
	return clock, nil
}

// StartTime returns the stored start time or the default
func (s *HeatService) StartTime() (string, error) {
	clock, err := s.store.GetStartTime()
	if errors.Is(err, database.ErrNotFound) {
		return config.DefaultStartTime, nil
	}
	return clock, err
}

// Overview returns heat stats and the timetable for today's date in the
// competition time zone
func (s *HeatService) Overview() (*Overview, error) {
	teams, err := s.store.ListTeams()
	if err != nil {
		return nil, err
	}
	workouts, err := s.store.ListWorkouts()
	if err != nil {
		return nil, err
	}
	clock, err := s.StartTime()
	if err != nil {
		return nil, err
	}
	start, err := utils.At(s.now().In(s.location), clock)
	if err != nil {
		return nil, err
	}

	schedule := heats.BuildSchedule(workouts, teams, start, s.timing)
	if schedule == nil {
		schedule = []heats.WorkoutSchedule{}
	}
	return &Overview{
		Stats:     heats.ComputeStats(teams),
		StartTime: clock,
		Schedule:  schedule,
	}, nil
}
