package model

import (
	"errors"
	"fmt"
)

var ErrNoRecord = errors.New("no record")
var ErrInvalidColor = errors.New("invalid color")

// Stage is the import pipeline step an ImportError originates from.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageParse   Stage = "parse"
	StagePersist Stage = "persist"
	StageSession Stage = "session"
	StageRequest Stage = "request"
)

type ErrorKind string

const (
	KindTransportFailure   ErrorKind = "transport_failure"
	KindInvalidPayload     ErrorKind = "invalid_payload"
	KindNoEvents           ErrorKind = "no_events"
	KindMalformed          ErrorKind = "malformed"
	KindPersistenceFailure ErrorKind = "persistence_failure"
	KindCancelled          ErrorKind = "cancelled"
	KindInvalidRequest     ErrorKind = "invalid_request"
)

// ImportError is the single failure shape surfaced to callers of the import pipeline.
// Message is meant to be shown to the user as is.
type ImportError struct {
	Stage   Stage
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func NewImportError(stage Stage, kind ErrorKind, message string, err error) *ImportError {
	return &ImportError{
		Stage:   stage,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
