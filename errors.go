package handoff

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of a transition error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindParticipant indicates a screen that cannot take part in a transition.
	KindParticipant
	// KindContainer indicates a container that cannot host a new session.
	KindContainer
	// KindConfig indicates invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindParticipant:
		return "participant"
	case KindContainer:
		return "container"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by TransitionError.
var (
	ErrNoParticipant  = errors.New("screen has no transitionable participant")
	ErrContainerBusy  = errors.New("container still holds snapshots of another session")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNoContainer    = errors.New("transition context has no container")
	ErrSessionRetired = errors.New("session is no longer active")
)

// TransitionError is a structured error reported to the transition driver.
type TransitionError struct {
	// Op is the operation that failed (e.g., "Transition.prepare").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

func newError(op string, kind ErrorKind, err error) *TransitionError {
	return &TransitionError{Op: op, Kind: kind, Err: err}
}

// KindOf returns the kind of the first TransitionError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}
