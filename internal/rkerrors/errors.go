// Package rkerrors implements the error taxonomy the round orchestrator and
// its collaborators classify failures into: fatal-at-startup config
// problems, recoverable transport failures, fatal protocol violations, and
// warnings that are absorbed and surfaced to observability without
// stopping the round.
package rkerrors

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Kind is one taxonomy bucket from the error handling design.
type Kind int

const (
	KindConfig Kind = iota
	KindTransport
	KindProtocol
	KindMirrorAnomaly
	KindOptimizerTimeout
	KindValidationWarning
	KindValidationError
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindMirrorAnomaly:
		return "mirror_anomaly"
	case KindOptimizerTimeout:
		return "optimizer_timeout"
	case KindValidationWarning:
		return "validation_warning"
	case KindValidationError:
		return "validation_error"
	default:
		return "unknown"
	}
}

// Fatal reports whether this kind terminates the session (after one last
// /session/end) rather than being absorbed as a round-scoped anomaly.
func (k Kind) Fatal() bool {
	switch k {
	case KindConfig, KindProtocol, KindValidationError:
		return true
	default:
		return false
	}
}

// Error is a taxonomy-tagged error. Wraps an underlying cause and carries
// enough context to become a structured log line without re-parsing a
// message string.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// ErrorFields renders the error as zap fields for structured logging.
func (e *Error) ErrorFields() []zap.Field {
	fields := []zap.Field{
		zap.String("error_kind", e.Kind.String()),
		zap.String("error_message", e.Message),
	}
	if e.Cause != nil {
		fields = append(fields, zap.Error(e.Cause))
	}
	return fields
}

func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func Config(message string, cause error) *Error    { return New(KindConfig, message, cause) }
func Transport(message string, cause error) *Error { return New(KindTransport, message, cause) }
func Protocol(message string, cause error) *Error   { return New(KindProtocol, message, cause) }

// Is reports whether err (or something it wraps) is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
