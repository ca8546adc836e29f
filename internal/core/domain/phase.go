package domain

import "go.trai.ch/zerr"

// Phase is one state of the build pipeline. The straight-line flow is
// Unconfigured -> Reconfiguring? -> Configuring -> Configured -> Building
// -> Built; PhaseFailed is terminal and reachable from any non-terminal
// state.
type Phase int

const (
	// PhaseUnconfigured is the initial state.
	PhaseUnconfigured Phase = iota
	// PhaseReconfiguring runs autoreconf in the source directory.
	PhaseReconfiguring
	// PhaseConfiguring runs (or skips) the configure script.
	PhaseConfiguring
	// PhaseConfigured means configure completed or was skipped by the cache gate.
	PhaseConfigured
	// PhaseBuilding runs make.
	PhaseBuilding
	// PhaseBuilt is the successful terminal state.
	PhaseBuilt
	// PhaseFailed is the failure terminal state.
	PhaseFailed
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUnconfigured:
		return "unconfigured"
	case PhaseReconfiguring:
		return "reconfiguring"
	case PhaseConfiguring:
		return "configuring"
	case PhaseConfigured:
		return "configured"
	case PhaseBuilding:
		return "building"
	case PhaseBuilt:
		return "built"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseBuilt || p == PhaseFailed
}

var phaseTransitions = map[Phase][]Phase{
	PhaseUnconfigured:  {PhaseReconfiguring, PhaseConfiguring},
	PhaseReconfiguring: {PhaseConfiguring},
	PhaseConfiguring:   {PhaseConfigured},
	PhaseConfigured:    {PhaseBuilding},
	PhaseBuilding:      {PhaseBuilt},
}

// PhaseMachine tracks the pipeline state and rejects illegal moves.
type PhaseMachine struct {
	current Phase
}

// NewPhaseMachine returns a machine in PhaseUnconfigured.
func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{current: PhaseUnconfigured}
}

// Current returns the machine's state.
func (m *PhaseMachine) Current() Phase {
	return m.current
}

// Advance moves to next, or returns ErrInvalidPhaseTransition.
func (m *PhaseMachine) Advance(next Phase) error {
	for _, allowed := range phaseTransitions[m.current] {
		if next == allowed {
			m.current = next
			return nil
		}
	}
	return zerr.With(zerr.With(ErrInvalidPhaseTransition, "from", m.current.String()), "to", next.String())
}

// Fail moves to the terminal PhaseFailed state. Failing a terminal
// machine is a no-op for PhaseFailed and an error for PhaseBuilt.
func (m *PhaseMachine) Fail() error {
	if m.current == PhaseBuilt {
		return zerr.With(zerr.With(ErrInvalidPhaseTransition, "from", m.current.String()), "to", PhaseFailed.String())
	}
	m.current = PhaseFailed
	return nil
}
