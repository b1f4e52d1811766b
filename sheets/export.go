package sheets

import (
	"context"
	"strconv"
	"strings"
	"time"

	"wodboard/heats"
	"wodboard/models"
	"wodboard/utils"
)

// RankingRows renders the leaderboard with one "m:ss (points)" column per workout
func RankingRows(entries []models.RankingEntry, workouts []models.Workout) [][]interface{} {
	header := []interface{}{"Position", "Team", "Members", "Points", "Completed"}
	for _, w := range workouts {
		header = append(header, w.Name)
	}
	rows := [][]interface{}{header}

	for _, e := range entries {
		byWorkout := make(map[string]models.WorkoutPlacement, len(e.Workouts))
		for _, p := range e.Workouts {
			byWorkout[p.WorkoutID] = p
		}

		row := []interface{}{e.Position, e.TeamName, strings.Join(e.Members, ", "), e.TotalPoints, e.CompletedWorkouts}
		for _, w := range workouts {
			p, ok := byWorkout[w.ID]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, utils.FormatElapsed(p.TimeSeconds)+" ("+strconv.Itoa(p.Points)+")")
		}
		rows = append(rows, row)
	}
	return rows
}

// ScheduleRows renders the timetable one row per team, times in loc
func ScheduleRows(schedule []heats.WorkoutSchedule, loc *time.Location) [][]interface{} {
	rows := [][]interface{}{{"Workout", "Heat", "Start", "End", "Lane", "Team"}}
	for _, ws := range schedule {
		for _, slot := range ws.Heats {
			start := utils.FormatClock(slot.Start.In(loc))
			end := utils.FormatClock(slot.End.In(loc))
			for _, t := range slot.Teams {
				rows = append(rows, []interface{}{ws.Workout.Name, slot.Heat, start, end, t.LaneLabel(), t.Name})
			}
		}
	}
	return rows
}

// Export overwrites the rankings and schedule tabs
func (c *Client) Export(ctx context.Context, rankings, schedule [][]interface{}) error {
	if err := c.Replace(ctx, SheetRankings, rankings); err != nil {
		return err
	}
	return c.Replace(ctx, SheetSchedule, schedule)
}
