package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/goaltracker/internal/db"
)

func MigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQL schema (sqlite and pgx storage drivers)",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(d *dbHandle) error {
				return db.RunMigrations(d.conn.DB, d.driver)
			})
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(d *dbHandle) error {
				return db.MigrateDown(d.conn.DB, d.driver)
			})
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(d *dbHandle) error {
				version, err := db.Version(d.conn.DB, d.driver)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
				return nil
			})
		},
	})

	return migrate
}
