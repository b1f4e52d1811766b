package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"wodboard/models"
	"wodboard/services"
	"wodboard/sheets"
	"wodboard/utils"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the heat timetable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSchedule(cmd.OutOrStdout(), svc, cfg.Location)
	},
}

func printSchedule(out io.Writer, svc *services.Services, loc *time.Location) error {
	overview, err := svc.Heats.Overview()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Start %s, %d teams in %d heats (%d unassigned)\n\n",
		overview.StartTime,
		overview.Stats.TotalTeams,
		overview.Stats.TotalHeats,
		overview.Stats.TotalTeams-overview.Stats.AssignedTeams,
	)
	if len(overview.Schedule) == 0 {
		fmt.Fprintln(out, "No heats assigned. Generate heats first.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, ws := range overview.Schedule {
		fmt.Fprintf(w, "%d. %s\n", ws.Workout.Number, ws.Workout.Name)
		for _, slot := range ws.Heats {
			names := make([]string, 0, len(slot.Teams))
			for _, t := range slot.Teams {
				if lane := t.LaneLabel(); lane != "" {
					names = append(names, lane+": "+t.Name)
				} else {
					names = append(names, t.Name)
				}
			}
			fmt.Fprintf(w, "  Heat %d\t%s-%s\t%s\n",
				slot.Heat,
				utils.FormatClock(slot.Start.In(loc)),
				utils.FormatClock(slot.End.In(loc)),
				strings.Join(names, ", "),
			)
		}
	}
	return w.Flush()
}

var exportCmd = &cobra.Command{
	Use:   "export-sheets",
	Short: "Push rankings and the timetable to Google Sheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		spreadsheetID, _ := cmd.Flags().GetString("spreadsheet")
		if spreadsheetID == "" {
			spreadsheetID = cfg.SpreadsheetID
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client, err := sheets.New(ctx, cfg.GoogleServiceAccountJSON, spreadsheetID)
		if err != nil {
			return err
		}

		rankings, schedule, err := exportRows(svc, cfg.Location)
		if err != nil {
			return err
		}
		if err := client.Export(ctx, rankings, schedule); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d teams and %d schedule rows to %s\n",
			len(rankings)-1, len(schedule)-1, client.SpreadsheetID())
		return nil
	},
}

func init() {
	exportCmd.Flags().String("spreadsheet", "", "Spreadsheet ID (defaults to GOOGLE_SHEETS_SPREADSHEET_ID)")
}

// exportRows builds the public view: hidden workouts stay out of the sheet
func exportRows(svc *services.Services, loc *time.Location) (rankings, schedule [][]interface{}, err error) {
	entries, err := svc.Rankings.Rankings(false)
	if err != nil {
		return nil, nil, err
	}
	summaries, err := svc.Workouts.Summaries(false)
	if err != nil {
		return nil, nil, err
	}
	overview, err := svc.Heats.Overview()
	if err != nil {
		return nil, nil, err
	}

	workouts := make([]models.Workout, 0, len(summaries))
	for _, s := range summaries {
		if s.Workout.IsVisible {
			workouts = append(workouts, s.Workout)
		}
	}
	return sheets.RankingRows(entries, workouts), sheets.ScheduleRows(overview.Schedule, loc), nil
}
