package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"leadmirror/internal/config"
	"leadmirror/internal/language"
)

func newConfigCommand(cmdCtx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigShowCommand(cmdCtx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set transcriber.api_key before processing audio.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Staging dir:      %s\n", cfg.Paths.StagingDir)
			fmt.Fprintf(out, "Log dir:          %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "API bind:         %s\n", cfg.Paths.APIBind)
			fmt.Fprintf(out, "API auth:         %s\n", yesNo(strings.TrimSpace(cfg.Paths.APIToken) != ""))
			fmt.Fprintf(out, "Transcriber URL:  %s\n", cfg.Transcriber.BaseURL)
			fmt.Fprintf(out, "Model:            %s\n", cfg.Transcriber.Model)
			fmt.Fprintf(out, "Language:         %s (%s)\n", cfg.Transcriber.Language, language.DisplayName(cfg.Transcriber.Language))
			fmt.Fprintf(out, "API key set:      %s\n", yesNo(strings.TrimSpace(cfg.Transcriber.APIKey) != ""))
			fmt.Fprintf(out, "Optimizer:        %s\n", yesNo(cfg.Optimizer.Enabled))
			fmt.Fprintf(out, "FFmpeg binary:    %s\n", cfg.FFmpegBinary())
			fmt.Fprintf(out, "FFprobe binary:   %s\n", cfg.FFprobeBinary())
			fmt.Fprintf(out, "Staging max age:  %dm (sweep every %dm)\n", cfg.Staging.MaxAgeMinutes, cfg.Staging.SweepIntervalMinutes)
			fmt.Fprintf(out, "History DB:       %s\n", cfg.HistoryDBPath())
			return nil
		},
	}
}
