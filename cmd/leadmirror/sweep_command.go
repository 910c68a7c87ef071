package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"leadmirror/internal/staging"
)

func newSweepCommand(cmdCtx *commandContext) *cobra.Command {
	var maxAgeMinutes int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove stale staging workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger(false)
			if err != nil {
				return err
			}

			maxAge := time.Duration(cfg.Staging.MaxAgeMinutes) * time.Minute
			if maxAgeMinutes > 0 {
				maxAge = time.Duration(maxAgeMinutes) * time.Minute
			}

			result := staging.CleanStale(cfg.Paths.StagingDir, maxAge, logger)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d stale workspace(s)\n", len(result.Removed))
			if len(result.Errors) > 0 {
				for _, cleanupErr := range result.Errors {
					fmt.Fprintf(out, "error: %s: %v\n", cleanupErr.Path, cleanupErr.Error)
				}
				return fmt.Errorf("%d workspace(s) could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeMinutes, "max-age", 0, "Override the staleness threshold in minutes")
	return cmd
}
