package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscriber(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateStaging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateTranscriber() error {
	if c.Transcriber.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/leadmirror/config.toml"
		}
		return fmt.Errorf("transcriber.api_key is required. Edit %s (create with 'leadmirror config init')", defaultPath)
	}
	if c.Transcriber.BaseURL == "" {
		return errors.New("transcriber.base_url must be set")
	}
	if c.Transcriber.Model == "" {
		return errors.New("transcriber.model must be set")
	}
	if c.Transcriber.TimeoutSeconds <= 0 {
		return errors.New("transcriber.timeout_seconds must be positive")
	}
	if c.Transcriber.RetryAttempts < 0 {
		return errors.New("transcriber.retry_attempts must not be negative")
	}
	return nil
}

func (c *Config) validateScoring() error {
	if c.Scoring.ConfidenceOffset < 0 || c.Scoring.ConfidenceOffset > 1 {
		return errors.New("scoring.confidence_offset must be between 0 and 1")
	}
	if c.Scoring.ConfidenceFloor < 0 || c.Scoring.ConfidenceFloor > 1 {
		return errors.New("scoring.confidence_floor must be between 0 and 1")
	}
	if c.Scoring.ConfidenceDefault < 0 || c.Scoring.ConfidenceDefault > 1 {
		return errors.New("scoring.confidence_default must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateStaging() error {
	if c.Staging.MaxAgeMinutes <= 0 {
		return errors.New("staging.max_age_minutes must be positive")
	}
	if c.Staging.SweepIntervalMinutes <= 0 {
		return errors.New("staging.sweep_interval_minutes must be positive")
	}
	return nil
}
