package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Search SearchConfig `json:"search"`
	Log    LogConfig    `json:"log"`
	UI     UIConfig     `json:"ui"`
}

// Search backends understood by the workspace searcher.
const (
	BackendWalk = "walk"
	BackendFd   = "fd"
)

type SearchConfig struct {
	Backend                string   `json:"backend"`                   // Default: "walk"
	MaxResultsPerExtension int      `json:"max_results_per_extension"` // Default: 1
	RespectGitignore       bool     `json:"respect_gitignore"`         // Default: false
	Exclude                []string `json:"exclude"`                   // Default: [".git", "node_modules"]

	// fd backend
	FdBinary             string `json:"fd_binary"`               // Default: "fd"
	MaxCommandOutputSize int64  `json:"max_command_output_size"` // Default: 1024 * 1024 (1MB)
}

type LogConfig struct {
	File       string `json:"file"`         // Default: "" (resolved to ~/.local/state/counterpart/counterpart.log)
	Level      string `json:"level"`        // Default: "info"
	MaxSizeMB  int    `json:"max_size_mb"`  // Default: 10
	MaxBackups int    `json:"max_backups"`  // Default: 5
	MaxAgeDays int    `json:"max_age_days"` // Default: 30
	Compress   bool   `json:"compress"`     // Default: true
}

type UIConfig struct {
	ColorPrimary    string `json:"color_primary"`     // Default: "63"
	ColorMuted      string `json:"color_muted"`       // Default: "241"
	ColorError      string `json:"color_error"`       // Default: "196"
	GlamourStyle    string `json:"glamour_style"`     // Default: "dark"
	StatusTimeoutMs int    `json:"status_timeout_ms"` // Default: 4000
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Backend:                BackendWalk,
			MaxResultsPerExtension: 1,
			RespectGitignore:       false,
			Exclude:                []string{".git", "node_modules"},
			FdBinary:               "fd",
			MaxCommandOutputSize:   1024 * 1024,
		},
		Log: LogConfig{
			File:       "",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
		UI: UIConfig{
			ColorPrimary:    "63",
			ColorMuted:      "241",
			ColorError:      "196",
			GlamourStyle:    "dark",
			StatusTimeoutMs: 4000,
		},
	}
}
