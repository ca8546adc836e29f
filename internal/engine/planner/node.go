package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/otto/internal/adapters/osenv"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/otto/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/otto/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.NodeID,
			osenv.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			tc, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}

			env, err := graft.Dep[ports.Environment](ctx)
			if err != nil {
				return nil, err
			}

			return New(tc, env), nil
		},
	})
}
