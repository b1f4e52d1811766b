// models/ranking.go - Derived views, recomputed on every read and never persisted
package models

// RankingEntry is one team's line in the overall leaderboard
type RankingEntry struct {
	Position          int                `json:"position"`
	TeamID            string             `json:"team_id"`
	TeamName          string             `json:"team_name"`
	AvatarURL         string             `json:"avatar_url,omitempty"`
	Members           []string           `json:"members"`
	TotalPoints       int                `json:"total_points"`
	CompletedWorkouts int                `json:"completed_workouts"`
	Workouts          []WorkoutPlacement `json:"workout_results"`
}

// WorkoutPlacement is a team's standing in a single workout. Position is
// 0 when the team has no result for it.
type WorkoutPlacement struct {
	WorkoutID     string `json:"workout_id"`
	WorkoutName   string `json:"workout_name"`
	WorkoutNumber int    `json:"workout_number"`
	TimeSeconds   int    `json:"time_seconds"`
	Points        int    `json:"points"`
	Position      int    `json:"position"`
}

// WorkoutSummary carries the completion stats shown for each workout
type WorkoutSummary struct {
	Workout        Workout `json:"workout"`
	CompletedTeams int     `json:"completed_teams"`
	TotalTeams     int     `json:"total_teams"`
	CompletionRate int     `json:"completion_rate"`
	Fastest        *Result `json:"fastest_result"`
}

// WorkoutDetail is a single workout with its results in finishing order
type WorkoutDetail struct {
	Workout        Workout           `json:"workout"`
	Results        []WorkoutStanding `json:"results"`
	AverageSeconds int               `json:"average_time"`
	FastestSeconds int               `json:"fastest_time"`
}

type WorkoutStanding struct {
	Position    int    `json:"position"`
	ResultID    string `json:"result_id"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	TimeSeconds int    `json:"time_seconds"`
	Elapsed     string `json:"elapsed"`
	Points      int    `json:"points"`
}
