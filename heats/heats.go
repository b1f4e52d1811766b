// Package heats splits the team roster into heats, assigns lanes and lays
// out the competition timetable.
package heats

import (
	"math/rand"

	"wodboard/models"
)

// DefaultGroupSize is the number of lanes on the floor
const DefaultGroupSize = 3

// Lanes are handed out by position within a heat. Positions past the end
// of the list get no lane.
var Lanes = []string{"A", "B", "C"}

// Assignment places one team in a heat. Lane is "" when the heat holds
// more teams than there are lane labels.
type Assignment struct {
	TeamID string `json:"team_id"`
	Heat   int    `json:"heat"`
	Lane   string `json:"lane"`
}

// Sizes returns the number of teams in each heat for teamCount teams split
// into groups of groupSize. Every heat is full except the last; a lone team
// in the last heat takes one team from the heat before it so nobody races
// alone.
func Sizes(teamCount, groupSize int) []int {
	if teamCount <= 0 {
		return nil
	}
	if groupSize < 1 {
		groupSize = DefaultGroupSize
	}

	totalHeats := (teamCount + groupSize - 1) / groupSize
	sizes := make([]int, totalHeats)
	for i := range sizes {
		sizes[i] = groupSize
	}
	remainder := teamCount % groupSize
	if remainder != 0 {
		sizes[totalHeats-1] = remainder
	}

	if remainder == 1 && totalHeats >= 2 && groupSize >= 3 {
		sizes[totalHeats-2]--
		sizes[totalHeats-1]++
	}
	return sizes
}

// Assign shuffles the teams and deals them into heats following Sizes.
// rng may be nil, in which case the package source is used.
func Assign(teamIDs []string, groupSize int, rng *rand.Rand) []Assignment {
	if len(teamIDs) == 0 {
		return nil
	}

	shuffled := make([]string, len(teamIDs))
	copy(shuffled, teamIDs)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	assignments := make([]Assignment, 0, len(shuffled))
	next := 0
	for heatIdx, size := range Sizes(len(shuffled), groupSize) {
		for pos := 0; pos < size; pos++ {
			a := Assignment{TeamID: shuffled[next], Heat: heatIdx + 1}
			if pos < len(Lanes) {
				a.Lane = Lanes[pos]
			}
			assignments = append(assignments, a)
			next++
		}
	}
	return assignments
}

// Stats summarises the heat state of a roster
type Stats struct {
	TotalTeams    int  `json:"total_teams"`
	AssignedTeams int  `json:"assigned_teams"`
	TotalHeats    int  `json:"total_heats"`
	HasHeats      bool `json:"has_heats"`
}

func ComputeStats(teams []models.Team) Stats {
	s := Stats{TotalTeams: len(teams)}
	for i := range teams {
		heat := teams[i].HeatNumber()
		if heat == 0 {
			continue
		}
		s.AssignedTeams++
		s.TotalHeats = max(s.TotalHeats, heat)
	}
	s.HasHeats = s.AssignedTeams > 0
	return s
}
