package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wodboard/services"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Seed teams and workouts from a YAML file",
	Long: `Seed teams and workouts from a YAML file.

Example file:
  teams:
    - name: Barbell Bandits
      member1: Ana
      member2: Bo
  workouts:
    - name: Fran
      number: 1
      visible: true`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := loadSeed(args[0])
		if err != nil {
			return err
		}
		return importSeed(cmd.OutOrStdout(), svc, seed)
	},
}

// Seed is the import file layout
type Seed struct {
	Teams    []services.TeamInput    `yaml:"teams"`
	Workouts []services.WorkoutInput `yaml:"workouts"`
}

func loadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(seed.Teams) == 0 && len(seed.Workouts) == 0 {
		return nil, fmt.Errorf("%s has no teams or workouts", path)
	}
	return &seed, nil
}

// importSeed creates workouts first so their numbers follow file order
func importSeed(out io.Writer, svc *services.Services, seed *Seed) error {
	for i, in := range seed.Workouts {
		w, err := svc.Workouts.Create(in)
		if err != nil {
			return fmt.Errorf("workout %d (%q): %w", i+1, in.Name, err)
		}
		fmt.Fprintf(out, "✓ Workout %d: %s\n", w.Number, w.Name)
	}

	for i, in := range seed.Teams {
		t, err := svc.Teams.Create(in)
		if err != nil {
			return fmt.Errorf("team %d (%q): %w", i+1, in.Name, err)
		}
		fmt.Fprintf(out, "✓ Team: %s\n", t.Name)
	}

	fmt.Fprintf(out, "Imported %d workouts and %d teams\n", len(seed.Workouts), len(seed.Teams))
	return nil
}
