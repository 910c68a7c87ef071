package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"leadmirror/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transcription runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No transcription runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				status := "ok"
				if entry.ErrorMessage != "" {
					status = "failed"
				} else if entry.Degraded {
					status = "degraded"
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.CreatedAt.Local().Format(time.DateTime),
					entry.FileName,
					entry.Strategy,
					fmt.Sprintf("%.2f", entry.Confidence),
					fmt.Sprintf("%.2f", entry.QualityScore),
					fmt.Sprintf("%.1fs", entry.DurationSeconds),
					status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "When", "File", "Strategy", "Conf", "Quality", "Duration", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))

			stats, err := store.Summarize(cmd.Context())
			if err == nil {
				fmt.Fprintf(out, "Total: %d  Degraded: %d  Failed: %d  Avg confidence: %.2f\n",
					stats.Total, stats.Degraded, stats.Failed, stats.AvgConfidence)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
