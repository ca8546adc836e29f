package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/otto/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/otto/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/otto/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/otto/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/otto/internal/adapters/telemetry/progrock"
	"go.trai.ch/otto/internal/core/ports"
	"go.trai.ch/otto/internal/engine/planner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			planner.NodeID,
			shell.NodeID,
			shell.ProbeNodeID,
			fs.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			pl, err := graft.Dep[*planner.Planner](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			probe, err := graft.Dep[ports.Probe](ctx)
			if err != nil {
				return nil, err
			}

			fingerprints, err := graft.Dep[ports.FingerprintStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(pl, executor, fingerprints, probe, log, telemetry, os.Stdout), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Loader:    loader,
		Telemetry: telemetry,
	}, nil
}
