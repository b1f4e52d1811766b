// services/services.go - Service wiring
package services

import (
	"math/rand"
	"time"

	"wodboard/database"
	"wodboard/heats"
	"wodboard/metrics"
	"wodboard/realtime"
)

// Options tune the services. Zero values fall back to the defaults.
type Options struct {
	GroupSize int
	Location  *time.Location
	Timing    heats.Timing
	Rand      *rand.Rand
	Now       func() time.Time
}

type Services struct {
	Teams    *TeamService
	Workouts *WorkoutService
	Results  *ResultService
	Heats    *HeatService
	Rankings *RankingService
	Admins   *AdminService
}

func New(store database.Store, events realtime.Publisher, opts Options) *Services {
	if events == nil {
		events = realtime.Discard
	}
	if opts.GroupSize < 1 {
		opts.GroupSize = heats.DefaultGroupSize
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Timing == (heats.Timing{}) {
		opts.Timing = heats.DefaultTiming
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Services{
		Teams:    NewTeamService(store, events),
		Workouts: NewWorkoutService(store, events),
		Results:  NewResultService(store, events),
		Heats:    NewHeatService(store, events, opts),
		Rankings: NewRankingService(store),
		Admins:   NewAdminService(store),
	}
}

// RefreshGauges resets the roster gauges from the store
func RefreshGauges(store database.Store) error {
	teams, err := store.ListTeams()
	if err != nil {
		return err
	}
	metrics.TeamsTotal.Set(float64(len(teams)))

	workouts, err := store.ListWorkouts()
	if err != nil {
		return err
	}
	visible := 0
	for _, w := range workouts {
		if w.IsVisible {
			visible++
		}
	}
	metrics.WorkoutsTotal.WithLabelValues("visible").Set(float64(visible))
	metrics.WorkoutsTotal.WithLabelValues("hidden").Set(float64(len(workouts) - visible))
	return nil
}
