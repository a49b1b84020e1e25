package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_Search(t *testing.T) {
	t.Run("Unknown Backend Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Search.Backend = "ripgrep"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "search.backend")
	})

	t.Run("Zero Results Per Extension Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Search.MaxResultsPerExtension = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_results_per_extension")
	})

	t.Run("Fd Backend Requires Binary", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Search.Backend = BackendFd
		cfg.Search.FdBinary = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "fd_binary")
	})

	t.Run("Empty Binary Allowed For Walk Backend", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Search.FdBinary = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidate_Log(t *testing.T) {
	t.Run("Unknown Level Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.Level = "verbose"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})

	t.Run("Negative Backups Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.MaxBackups = -1
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_backups")
	})
}

func TestValidate_UI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.StatusTimeoutMs = 0
	cfg.UI.GlamourStyle = ""
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status_timeout_ms")
	assert.Contains(t, err.Error(), "glamour_style")
}
