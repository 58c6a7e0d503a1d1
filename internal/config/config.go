// Package config loads citemap's TOML configuration file.
//
// Every setting has a default, so the file is optional and may set any
// subset of keys:
//
//	[pipeline]
//	seed = 7
//	symmetrize = true
//
//	[pipeline.layout]
//	min_radius = 30
//	max_attempts = 2000
//
//	[pipeline.render]
//	title = "Citations"
//	regions = true
//
//	[server]
//	addr = ":8080"
//	read_timeout = "30s"
//
//	[cache]
//	disabled = false
//
// Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/citemap/internal/server"
	"github.com/matzehuels/citemap/pkg/errors"
	"github.com/matzehuels/citemap/pkg/pipeline"
)

const appName = "citemap"

// Config is the full set of file-configurable settings.
type Config struct {
	Pipeline pipeline.Options `toml:"pipeline"`
	Server   server.Options   `toml:"server"`
	Cache    Cache            `toml:"cache"`
	Log      Log              `toml:"log"`
}

// Cache configures the CLI's on-disk layout cache.
type Cache struct {
	Disabled bool `toml:"disabled"`
	// Dir overrides the default cache directory.
	Dir string `toml:"dir"`
}

// Log configures the logger.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Pipeline: pipeline.DefaultOptions(),
		Server:   server.DefaultOptions(),
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path means the default
// location, which may be absent. An explicit path that does not exist is
// a FILE_NOT_FOUND error. Unknown keys are rejected so typos surface.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidOptions, err, "parse config %s", path)
	}
	return cfg, checkUndecoded(md, path)
}

// Decode parses TOML text over the defaults.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidOptions, err, "parse config")
	}
	return cfg, checkUndecoded(md, "")
}

func checkUndecoded(md toml.MetaData, path string) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	where := "config"
	if path != "" {
		where = "config " + path
	}
	return errors.New(errors.ErrCodeInvalidOptions, "%s: unknown keys: %s", where, strings.Join(names, ", "))
}

// Validate checks the pipeline settings.
func (c Config) Validate() error {
	return c.Pipeline.Validate()
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/citemap/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the layout cache directory: Cache.Dir when set, otherwise
// the XDG cache location (~/.cache/citemap).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
