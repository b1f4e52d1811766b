package heats

import (
	"cmp"
	"slices"
	"time"

	"wodboard/models"
)

// Timing controls how the timetable advances
type Timing struct {
	Heat       time.Duration // length of one heat
	Transition time.Duration // changeover between heats of the same workout
	Rest       time.Duration // break between workouts
}

var DefaultTiming = Timing{
	Heat:       10 * time.Minute,
	Transition: 5 * time.Minute,
	Rest:       10 * time.Minute,
}

// HeatSlot is one heat of one workout with its window and lane-ordered teams
type HeatSlot struct {
	Heat  int           `json:"heat"`
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
	Teams []models.Team `json:"teams"`
}

type WorkoutSchedule struct {
	Workout models.Workout `json:"workout"`
	Heats   []HeatSlot     `json:"heats"`
}

// BuildSchedule lays every workout's heats end to end starting at start.
// Heats without teams are skipped and do not move the clock. The result is
// empty when no team has been assigned a heat.
func BuildSchedule(workouts []models.Workout, teams []models.Team, start time.Time, timing Timing) []WorkoutSchedule {
	byHeat := make(map[int][]models.Team)
	totalHeats := 0
	for _, t := range teams {
		heat := t.HeatNumber()
		if heat == 0 {
			continue
		}
		byHeat[heat] = append(byHeat[heat], t)
		totalHeats = max(totalHeats, heat)
	}
	if totalHeats == 0 || len(workouts) == 0 {
		return nil
	}
	for heat := range byHeat {
		SortByLane(byHeat[heat])
	}

	ordered := slices.Clone(workouts)
	slices.SortStableFunc(ordered, func(a, b models.Workout) int {
		return cmp.Compare(a.Number, b.Number)
	})

	schedule := make([]WorkoutSchedule, 0, len(ordered))
	clock := start
	for i, w := range ordered {
		ws := WorkoutSchedule{Workout: w}
		for heat := 1; heat <= totalHeats; heat++ {
			members := byHeat[heat]
			if len(members) == 0 {
				continue
			}
			ws.Heats = append(ws.Heats, HeatSlot{
				Heat:  heat,
				Start: clock,
				End:   clock.Add(timing.Heat),
				Teams: members,
			})
			clock = clock.Add(timing.Heat + timing.Transition)
		}
		if len(ws.Heats) > 0 {
			clock = clock.Add(-timing.Transition)
		}
		if i < len(ordered)-1 {
			clock = clock.Add(timing.Rest)
		}
		schedule = append(schedule, ws)
	}
	return schedule
}

// SortByLane orders teams A, B, C with unlaned teams last. Equal lanes keep
// their relative order.
func SortByLane(teams []models.Team) {
	slices.SortStableFunc(teams, func(a, b models.Team) int {
		return cmp.Compare(laneRank(a.LaneLabel()), laneRank(b.LaneLabel()))
	})
}

func laneRank(lane string) int {
	for i, l := range Lanes {
		if l == lane {
			return i + 1
		}
	}
	return 999
}
