package domain

import "time"

// Default configuration values.
const (
	DefaultServerURL       = "http://127.0.0.1:8000"
	DefaultSearchLimit     = 50
	DefaultSearchPageLimit = 15
	DefaultBlockLimit      = 100
	DefaultFamilyPageLimit = 10
)

// Config is the resolved matchview configuration.
type Config struct {
	Server     ServerConfig
	Cache      CacheConfig
	Pagination PaginationConfig
}

// ServerConfig describes how to reach the matching service.
type ServerConfig struct {
	URL   string
	Token string
	// Timeout of zero disables the client timeout.
	Timeout time.Duration
}

// CacheConfig describes the local cache.
type CacheConfig struct {
	Dir          string
	SingleFlight bool
	MaxAge       time.Duration
	MaxEntries   int
}

// PaginationConfig holds the page sizes of all listings.
type PaginationConfig struct {
	DefaultLimit    int
	SearchLimit     int
	SearchPageLimit int
	BlockLimit      int
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{URL: DefaultServerURL},
		Cache:  CacheConfig{Dir: DefaultCachePath()},
		Pagination: PaginationConfig{
			DefaultLimit:    DefaultPageLimit,
			SearchLimit:     DefaultSearchLimit,
			SearchPageLimit: DefaultSearchPageLimit,
			BlockLimit:      DefaultBlockLimit,
		},
	}
}
