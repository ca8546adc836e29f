package ports

import "go.trai.ch/otto/internal/core/domain"

// ConfigLoader reads a build description file into a spec.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load parses the file at path and returns the spec it describes.
	Load(path string) (*domain.BuildSpec, error)
}
