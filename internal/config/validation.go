package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Search validation
	if c.Search.Backend != BackendWalk && c.Search.Backend != BackendFd {
		errs = append(errs, fmt.Sprintf("search.backend must be %q or %q", BackendWalk, BackendFd))
	}
	if c.Search.MaxResultsPerExtension < 1 {
		errs = append(errs, "search.max_results_per_extension must be >= 1")
	}
	if c.Search.Backend == BackendFd && c.Search.FdBinary == "" {
		errs = append(errs, "search.fd_binary is required when search.backend is fd")
	}
	if c.Search.MaxCommandOutputSize < 1 {
		errs = append(errs, "search.max_command_output_size must be >= 1")
	}

	// Log validation
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, "log.level must be one of debug, info, warn, error")
	}
	if c.Log.MaxSizeMB < 1 {
		errs = append(errs, "log.max_size_mb must be >= 1")
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, "log.max_backups must be >= 0")
	}
	if c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log.max_age_days must be >= 0")
	}

	// UI validation
	if c.UI.StatusTimeoutMs < 1 {
		errs = append(errs, "ui.status_timeout_ms must be >= 1")
	}
	if c.UI.GlamourStyle == "" {
		errs = append(errs, "ui.glamour_style is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
