package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"leadmirror/internal/logging"
	"leadmirror/internal/services"
	"leadmirror/internal/services/whisper"
	"leadmirror/internal/transcribe"
)

func newProcessCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Transcribe a single audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger(false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = services.WithRequestID(ctx, uuid.NewString())

			client := whisper.NewClient(whisper.Config{
				APIKey:         cfg.Transcriber.APIKey,
				BaseURL:        cfg.Transcriber.BaseURL,
				Model:          cfg.Transcriber.Model,
				TimeoutSeconds: cfg.Transcriber.TimeoutSeconds,
				RetryAttempts:  cfg.Transcriber.RetryAttempts,
			})
			pipeline := transcribe.New(cfg, client,
				transcribe.WithLogger(logging.NewComponentLogger(logger, "pipeline")))

			// The input file belongs to the user; only pipeline scratch space is
			// cleaned up.
			input := args[0]
			result, err := pipeline.Process(ctx, input, filepath.Base(input))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			fmt.Fprintln(out, result.Text)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Strategy:    %s\n", result.Metadata.Strategy)
			fmt.Fprintf(out, "Confidence:  %.2f\n", result.Confidence)
			fmt.Fprintf(out, "Quality:     %.2f\n", result.Metadata.QualityScore)
			fmt.Fprintf(out, "Duration:    %.1fs\n", result.Duration)
			fmt.Fprintf(out, "Processing:  %dms\n", result.Metadata.ProcessingMillis)
			if len(result.Metadata.OptimizationLabels) > 0 {
				fmt.Fprintf(out, "Audio:       %s\n", strings.Join(result.Metadata.OptimizationLabels, ", "))
			}
			for _, issue := range result.Metadata.QualityIssues {
				fmt.Fprintf(out, "Issue:       %s\n", issue)
			}
			for _, rec := range result.Metadata.Recommendations {
				fmt.Fprintf(out, "Suggestion:  %s\n", rec)
			}
			for _, degradation := range result.Metadata.Degradations {
				fmt.Fprintf(out, "Degraded:    %s\n", degradation)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full result as JSON")
	return cmd
}
