package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"textinsight/internal/store"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations to the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the store applies pending migrations.
			a, cleanup, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if a.Repo == nil {
				return store.ErrNotConfigured
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", a.Config.StoreDriver)
			return nil
		},
	}
}
