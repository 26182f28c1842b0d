package commands

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and exit",
	Long: `Create the users, bookings, payments and notifications tables if they do not
exist.  Existing tables are left untouched; there is no versioning.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log := setup()
		store, err := openStore(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		return store.Close()
	},
}
