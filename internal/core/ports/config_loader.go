package ports

import "go.trai.ch/fmap/internal/core/domain"

// ConfigLoader defines the interface for loading the task configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and returns the task set.
	Load(cwd string) (*domain.TaskSet, error)
}
