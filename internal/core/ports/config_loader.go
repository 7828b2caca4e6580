package ports

import "go.trai.ch/matchview/internal/core/domain"

// ConfigLoader defines the interface for loading the configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the given working directory.
	// An explicit path overrides discovery. Missing files yield the defaults.
	Load(cwd, path string) (*domain.Config, error)
}
