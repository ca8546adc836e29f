// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/otto/internal/adapters/config"
	_ "go.trai.ch/otto/internal/adapters/fs"
	_ "go.trai.ch/otto/internal/adapters/logger"
	_ "go.trai.ch/otto/internal/adapters/osenv"
	_ "go.trai.ch/otto/internal/adapters/shell"
	_ "go.trai.ch/otto/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/otto/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/otto/internal/app"
	_ "go.trai.ch/otto/internal/engine/planner"
)
