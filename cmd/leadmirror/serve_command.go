package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"leadmirror/internal/api"
	"leadmirror/internal/history"
	"leadmirror/internal/logging"
	"leadmirror/internal/metrics"
	"leadmirror/internal/preflight"
	"leadmirror/internal/services/whisper"
	"leadmirror/internal/staging"
	"leadmirror/internal/transcribe"
)

func newServeCommand(cmdCtx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transcription HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger(true)
			if err != nil {
				return err
			}

			lock := flock.New(cfg.LockFilePath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock %s: %w", cfg.LockFilePath(), err)
			}
			if !locked {
				return fmt.Errorf("another instance is already running (lock: %s)", cfg.LockFilePath())
			}
			defer func() {
				_ = lock.Unlock()
				_ = os.Remove(cfg.LockFilePath())
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !skipPreflight {
				results := preflight.RunAll(ctx, cfg)
				for _, result := range results {
					if result.Passed {
						logger.Info("preflight check passed",
							logging.String("check", result.Name),
							logging.String("detail", result.Detail))
						continue
					}
					logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
						logging.String("check", result.Name),
						logging.String("detail", result.Detail),
						logging.String(logging.FieldErrorHint, "fix the reported issue or rerun with --skip-preflight"),
						logging.String(logging.FieldImpact, "service may reject or degrade requests"),
					)
				}
				if !preflight.Passed(results) {
					return fmt.Errorf("preflight failed; rerun with --skip-preflight to start anyway")
				}
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			serviceMetrics := metrics.New()
			client := whisper.NewClient(whisper.Config{
				APIKey:         cfg.Transcriber.APIKey,
				BaseURL:        cfg.Transcriber.BaseURL,
				Model:          cfg.Transcriber.Model,
				TimeoutSeconds: cfg.Transcriber.TimeoutSeconds,
				RetryAttempts:  cfg.Transcriber.RetryAttempts,
			})
			pipeline := transcribe.New(cfg, client,
				transcribe.WithLogger(logging.NewComponentLogger(logger, "pipeline")),
				transcribe.WithObserver(serviceMetrics),
			)

			router := api.NewRouter(api.Handlers{
				Config:   cfg,
				Pipeline: pipeline,
				History:  store,
				Metrics:  serviceMetrics.Handler(),
				Logger:   logging.NewComponentLogger(logger, "api"),
				DepsCheck: func() []api.DependencyStatus {
					statuses := preflight.CheckSystemDeps(cfg)
					out := make([]api.DependencyStatus, len(statuses))
					for i, status := range statuses {
						out[i] = api.DependencyStatus{
							Name:      status.Name,
							Available: status.Available,
							Optional:  status.Optional,
							Detail:    status.Detail,
						}
					}
					return out
				},
			})

			server := api.NewServer(cfg.Paths.APIBind, router, logging.NewComponentLogger(logger, "api"))
			if err := server.Start(ctx); err != nil {
				return err
			}
			defer server.Stop()

			go runSweepLoop(ctx, cfg.Paths.StagingDir,
				time.Duration(cfg.Staging.MaxAgeMinutes)*time.Minute,
				time.Duration(cfg.Staging.SweepIntervalMinutes)*time.Minute,
				logging.NewComponentLogger(logger, "staging"))

			logger.Info("service started",
				logging.String("bind", cfg.Paths.APIBind),
				logging.Int("pid", os.Getpid()))
			<-ctx.Done()
			logger.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Start even when preflight checks fail")
	return cmd
}

// runSweepLoop periodically reclaims workspaces abandoned by interrupted runs.
func runSweepLoop(ctx context.Context, stagingDir string, maxAge, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			staging.CleanStale(stagingDir, maxAge, logger)
		}
	}
}
