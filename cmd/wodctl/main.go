// cmd/wodctl - Competition admin tool
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wodboard/config"
	"wodboard/database"
	"wodboard/log"
	"wodboard/realtime"
	"wodboard/services"
)

var (
	cfg   config.Config
	store database.Store
	svc   *services.Services
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wodctl",
	Short: "wodctl - Manage a wodboard competition",
	Long: `wodctl works directly against the wodboard store configured in the
environment (or .env): run migrations, create admins, seed teams and
workouts, print the heat timetable and export to Google Sheets.`,
	SilenceUsage:      true,
	PersistentPreRunE: openStore,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Store driver override (postgres or bolt)")
	rootCmd.PersistentFlags().String("bolt-path", "", "Bolt file override")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(exportCmd)
}

func openStore(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	var err error
	cfg, err = config.FromEnv()
	if err != nil {
		return err
	}
	log.Init(log.Config{Level: log.Level(cfg.LogLevel), JSONOutput: cfg.LogJSON, Output: os.Stderr})

	if driver, _ := cmd.Flags().GetString("store"); driver != "" {
		cfg.StoreDriver = driver
	}
	if path, _ := cmd.Flags().GetString("bolt-path"); path != "" {
		cfg.BoltPath = path
	}

	store, err = database.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	svc = services.New(store, realtime.Discard, services.Options{
		GroupSize: cfg.HeatGroupSize,
		Location:  cfg.Location,
	})
	return nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Schema up to date (%s)\n", cfg.StoreDriver)
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		created, err := svc.Admins.Create(username, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Admin created: %s (ID: %d)\n", created.Username, created.ID)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().String("username", "", "Admin username (required)")
	adminCreateCmd.Flags().String("password", "", "Admin password, at least 8 characters (required)")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
}
