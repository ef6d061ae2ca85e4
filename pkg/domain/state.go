package domain

// Phase is the lifecycle position of a runtime session.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized" // No successful Initialize yet
	PhaseActive        Phase = "active"        // Between Initialize and Terminate
	PhaseTerminated    Phase = "terminated"    // Terminate succeeded; the session is closed
)

// SessionState represents the snapshot of a runtime session.
type SessionState struct {
	// Dialect is the protocol in use, nil while unset.
	Dialect *Dialect

	// Phase is the lifecycle position.
	Phase Phase

	// ExitStatus is the last exit value read or written this session.
	ExitStatus string

	// CompletionStatus is the last completion status read or written this session.
	CompletionStatus string
}

// NewSessionState creates a clean, uninitialized state.
func NewSessionState() SessionState {
	return SessionState{Phase: PhaseUninitialized}
}

// Active reports whether runtime reads and writes are allowed.
func (s SessionState) Active() bool {
	return s.Phase == PhaseActive
}

// CanInitialize reports whether Initialize may be attempted from the current phase.
func (s SessionState) CanInitialize() bool {
	return s.Phase == PhaseUninitialized
}
