package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"port": "8080",
		"database_url": "postgres://localhost/booklog",
		"max_attempts": 5,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost/booklog", cfg.DatabaseURL)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeAttempts(t *testing.T) {
	cfg := &Config{
		MaxAttempts: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_attempts")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Port:        "8080",
		MaxAttempts: 3,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Port:        "8080",
		DatabaseURL: "postgres://localhost/booklog",
		MaxAttempts: 3,
	}

	partial := Config{
		Port:   "9090",
		APIKey: "custom-key",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "9090", merged.Port)
	assert.Equal(t, "custom-key", merged.APIKey)

	// Default values should fill in empty fields
	assert.Equal(t, "postgres://localhost/booklog", merged.DatabaseURL)
	assert.Equal(t, 3, merged.MaxAttempts)
}

func TestMergeWithDefaults_EmptyConfig(t *testing.T) {
	defaults := Config{
		Port:        "8080",
		MaxAttempts: 3,
	}

	empty := Config{}
	merged := empty.MergeWithDefaults(defaults)

	assert.Equal(t, "8080", merged.Port)
	assert.Equal(t, 3, merged.MaxAttempts)
}
