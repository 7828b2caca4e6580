package config

import "time"

// File represents the structure of the matchview.yaml configuration file.
type File struct {
	Server     ServerDTO     `yaml:"server"`
	Cache      CacheDTO      `yaml:"cache"`
	Pagination PaginationDTO `yaml:"pagination"`
}

// ServerDTO describes the matching service endpoint.
type ServerDTO struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheDTO describes the local result cache.
type CacheDTO struct {
	Dir          string      `yaml:"dir"`
	SingleFlight bool        `yaml:"single_flight"`
	Eviction     EvictionDTO `yaml:"eviction"`
}

// EvictionDTO configures what "cache prune" removes.
type EvictionDTO struct {
	MaxAge     time.Duration `yaml:"max_age"`
	MaxEntries int           `yaml:"max_entries"`
}

// PaginationDTO overrides the page sizes. Zero keeps the default.
type PaginationDTO struct {
	DefaultLimit    int `yaml:"default_limit"`
	SearchLimit     int `yaml:"search_limit"`
	SearchPageLimit int `yaml:"search_page_limit"`
	BlockLimit      int `yaml:"block_limit"`
}
