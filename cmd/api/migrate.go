package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the ros_records schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := bootstrap()

		db, err := openMigrated(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return db.Close()
	},
}
