package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textinsight/internal/jobs"
	"textinsight/internal/store"
)

func newPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete stored analyses older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if a.Repo == nil {
				return store.ErrNotConfigured
			}
			if days == 0 {
				days = a.Config.RetentionDays
			}
			if days <= 0 {
				return errors.New("set --days or RETENTION_DAYS")
			}

			pruner, err := jobs.NewRetentionPruner(a.Pruner(), days, a.Config.RetentionSchedule, a.Logger)
			if err != nil {
				return err
			}
			deleted, err := pruner.PruneOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d analyses older than %d days\n", deleted, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "retention window in days (default RETENTION_DAYS)")
	return cmd
}
