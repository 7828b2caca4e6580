// Package config provides the configuration loader for matchview.
package config

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that take precedence over the configuration file.
const (
	EnvServer   = "MATCHVIEW_SERVER"
	EnvToken    = "MATCHVIEW_TOKEN"
	EnvCacheDir = "MATCHVIEW_CACHE_DIR"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd. An explicit path must exist; without one
// the nearest matchview.yaml in cwd or its parents is used, and the defaults apply
// when there is none.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	root := cwd

	configPath := path
	if configPath != "" && !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cwd, configPath)
	}
	if configPath == "" {
		configPath = findConfiguration(cwd)
	}

	if configPath != "" {
		file, err := readFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := apply(cfg, file); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		root = filepath.Dir(configPath)
		l.Logger.Debug("using configuration " + configPath)
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(root, cfg.Cache.Dir)
	}
	return cfg, nil
}

func findConfiguration(cwd string) string {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

func readFile(path string) (*File, error) {
	// #nosec G304 -- path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	return &file, nil
}

func apply(cfg *domain.Config, file *File) error {
	if file.Server.URL != "" {
		cfg.Server.URL = file.Server.URL
	}
	cfg.Server.Token = file.Server.Token
	cfg.Server.Timeout = file.Server.Timeout

	if file.Cache.Dir != "" {
		cfg.Cache.Dir = file.Cache.Dir
	}
	cfg.Cache.SingleFlight = file.Cache.SingleFlight
	cfg.Cache.MaxAge = file.Cache.Eviction.MaxAge
	cfg.Cache.MaxEntries = file.Cache.Eviction.MaxEntries

	limits := []struct {
		key   string
		value int
		dst   *int
	}{
		{"pagination.default_limit", file.Pagination.DefaultLimit, &cfg.Pagination.DefaultLimit},
		{"pagination.search_limit", file.Pagination.SearchLimit, &cfg.Pagination.SearchLimit},
		{"pagination.search_page_limit", file.Pagination.SearchPageLimit, &cfg.Pagination.SearchPageLimit},
		{"pagination.block_limit", file.Pagination.BlockLimit, &cfg.Pagination.BlockLimit},
	}
	for _, lim := range limits {
		if lim.value < 0 {
			return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "page size must not be negative"), "key", lim.key)
		}
		if lim.value > 0 {
			*lim.dst = lim.value
		}
	}
	return nil
}

func applyEnv(cfg *domain.Config) {
	if v := os.Getenv(EnvServer); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.Cache.Dir = v
	}
}

func validate(cfg *domain.Config) error {
	u, err := url.Parse(cfg.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "server url must be an absolute http(s) url"), "url", cfg.Server.URL)
	}
	if cfg.Server.Timeout < 0 {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "server timeout must not be negative"), "timeout", cfg.Server.Timeout.String())
	}
	if cfg.Cache.MaxAge < 0 || cfg.Cache.MaxEntries < 0 {
		return zerr.Wrap(domain.ErrConfigInvalid, "cache eviction bounds must not be negative")
	}
	return nil
}
