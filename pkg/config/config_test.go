package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deontologician/rql/pkg/config"
	"github.com/deontologician/rql/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	// A path that does not exist falls back to built-in defaults.
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 28015, cfg.Port)
	assert.Equal(t, "test", cfg.Database)
	assert.Equal(t, 40, cfg.PageSize)
	assert.Equal(t, "monokai", cfg.Style)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rql.toml")
	require.NoError(t, os.WriteFile(path, []byte("host = \"db.internal\"\npagesize = 10\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 10, cfg.PageSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, 28015, cfg.Port)
}

func TestLoadBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rql.toml")
	require.NoError(t, os.WriteFile(path, []byte("host = [unclosed"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RQL_HOST", "env.example.com")
	t.Setenv("RQL_PAGESIZE", "7")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "env.example.com", cfg.Host)
	assert.Equal(t, 7, cfg.PageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Settings)
		wantErr bool
	}{
		{"defaults are valid", func(s *config.Settings) {}, false},
		{"zero page size", func(s *config.Settings) { s.PageSize = 0 }, true},
		{"negative page size", func(s *config.Settings) { s.PageSize = -3 }, true},
		{"port out of range", func(s *config.Settings) { s.Port = 70000 }, true},
		{"unknown style", func(s *config.Settings) { s.Style = "not-a-style" }, true},
		{"known alternate style", func(s *config.Settings) { s.Style = "github" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
