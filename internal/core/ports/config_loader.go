package ports

import "go.trai.ch/knit/internal/core/domain"

// ConfigLoader defines the interface for loading the bundle configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds knit.yaml at or above cwd and returns the configuration with absolute paths.
	// When no file exists it returns a configuration rooted at cwd and no error.
	Load(cwd string) (*domain.BundleConfig, error)
}
