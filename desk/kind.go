package desk

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindPassengers Kind = "passengers"
	KindAirplanes  Kind = "airplanes"
	KindFlights    Kind = "flights"
	KindTickets    Kind = "tickets"
)

var Kinds = []Kind{KindPassengers, KindAirplanes, KindFlights, KindTickets}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

var (
	ErrValidation     = errors.New("form is incomplete")
	ErrBusy           = errors.New("submission already in flight")
	ErrTransport      = errors.New("transport fault")
	ErrMutationFailed = errors.New("mutation rejected")
	ErrSessionOpen    = errors.New("an edit session is already open")
	ErrSessionClosed  = errors.New("edit session is not open")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownKind    = errors.New("unknown kind")
	ErrReadOnlyField  = errors.New("field is derived")
	ErrNotFound       = errors.New("not found")
)

// ValidationError lists the form fields that are missing or malformed.
type ValidationError struct {
	Kind    Kind
	Missing []string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s form: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s form: missing %v", e.Kind, e.Missing)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MutationError is a non-success status returned by the backend.
type MutationError struct {
	Kind   Kind
	Op     string
	Status int
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s rejected with status %d", e.Op, e.Kind, e.Status)
}

func (e *MutationError) Unwrap() error { return ErrMutationFailed }
