// Package config loads rql's layered configuration: embedded defaults,
// then the user's config file from the XDG config directory, then RQL_*
// environment variables. Command-line flags are applied on top by the
// command layer.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/deontologician/rql/pkg/errors"
)

// Settings holds everything one invocation needs.
type Settings struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	AuthKey  string `koanf:"authkey"`
	Database string `koanf:"database"`
	Driver   string `koanf:"driver"`
	DSN      string `koanf:"dsn"`
	PageSize int    `koanf:"pagesize"`
	Style    string `koanf:"style"`
}

// Load builds Settings from defaults, the config file at path (or the
// default XDG location when path is empty), and the environment.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if path == "" {
		path = filepath.Join(xdg.ConfigHome, "rql", "rql.toml")
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
	}

	if err := k.Load(env.Provider("RQL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "RQL_"))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Settings
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// Validate fails fast on settings that would otherwise surface as
// confusing per-item failures later in the run.
func (s *Settings) Validate() error {
	if s.PageSize <= 0 {
		return errors.Newf(errors.ErrConfigInvalid, "page size must be positive, got %d", s.PageSize)
	}
	if s.Port <= 0 || s.Port > 65535 {
		return errors.Newf(errors.ErrConfigInvalid, "port must be in 1-65535, got %d", s.Port)
	}
	if s.Style != "" {
		if _, ok := chromastyles.Registry[s.Style]; !ok {
			return errors.Newf(errors.ErrConfigInvalid, "unknown highlight style %q", s.Style)
		}
	}
	return nil
}
