package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"textinsight/internal/models"
	"textinsight/internal/store"
	"textinsight/internal/validation"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		persist bool
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a file, or stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if valid, msg := validation.ValidateText(text); !valid {
				return errors.New(msg)
			}

			a, cleanup, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result := a.Analyzer.Build(cmd.Context(), text)

			if persist {
				if a.Repo == nil {
					return store.ErrNotConfigured
				}
				rec := models.NewAnalysisRecord(text, result)
				if err := a.Repo.Insert(cmd.Context(), rec); err != nil {
					return fmt.Errorf("failed to store analysis: %w", err)
				}
				a.Logger.Info("analysis stored", "id", rec.ID)
			}

			return writeJSON(cmd.OutOrStdout(), result, pretty)
		},
	}

	cmd.Flags().BoolVar(&persist, "store", false, "persist the analysis to the configured store")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
