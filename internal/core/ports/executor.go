// Package ports defines the core interfaces for the engine's collaborators.
package ports

import (
	"context"
	"io"

	"go.trai.ch/otto/internal/core/domain"
)

// Executor runs one planned command to completion.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes cmd and blocks until it exits. Process output is
	// streamed to the executor's logger and, when out is non-nil, to out.
	//
	// A not-found condition maps to domain.ErrExecutableNotFound and a
	// failing exit status to domain.ErrNonZeroExit.
	Run(ctx context.Context, cmd domain.Command, out io.Writer) error
}
