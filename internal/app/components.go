package app

import (
	"go.trai.ch/otto/internal/core/ports"
)

// Components bundles the wired application surface handed to the CLI.
type Components struct {
	App       *App
	Logger    ports.Logger
	Loader    ports.ConfigLoader
	Telemetry ports.Telemetry
}
