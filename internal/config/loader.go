package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "counterpart"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// LogFile is the default log file name under ~/.local/state/counterpart
	LogFile = "counterpart.log"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads configuration from ~/.config/counterpart/config.json
// and merges it with defaults. Dotfile values override defaults.
// Returns default config if dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
func (l *Loader) Load() (*Config, error) {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		cfg := DefaultConfig()
		return cfg, nil // Use defaults if can't get home dir
	}

	cfg, err := l.LoadFrom(filepath.Join(homeDir, ".config", ConfigDir, ConfigFile))
	if err != nil {
		return nil, err
	}
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogPath(homeDir)
	}
	return cfg, nil
}

// DefaultLogPath returns the log file used when log.file is not configured.
func DefaultLogPath(homeDir string) string {
	return filepath.Join(homeDir, ".local", "state", ConfigDir, LogFile)
}

// LoadFrom reads configuration from an explicit path with the same merge rules as Load.
// A missing file yields the defaults.
//
// NOTE: JSON keys are unmarshalled directly over the default configuration, so explicit
// zero values (0, false, "", []) in the file override defaults.
func (l *Loader) LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, err // Return error for permission issues
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err // Return error for malformed JSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
