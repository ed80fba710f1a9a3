package main

import (
	"fmt"

	"servicedesk/db"
	"servicedesk/db/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect schema migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := cfg.Logger()

		dbConn, err := db.Open(cfg.DBDriver, cfg.DSN())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		action := "up"
		if len(args) == 1 {
			action = args[0]
		}

		ctx := cmd.Context()
		switch action {
		case "up":
			applied, err := migrations.Up(ctx, dbConn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			logger.WithField("applied", applied).Info("migrations are up to date")
		case "down":
			version, err := migrations.Down(ctx, dbConn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			logger.WithField("version", version).Info("migration rolled back")
		case "status":
			statuses, err := migrations.Status(ctx, dbConn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8d %-8s %s\n", s.Source.Version, s.State, s.Source.Path)
			}
		}
		return nil
	},
}
