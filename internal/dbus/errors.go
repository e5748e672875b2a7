package dbus

import (
	"errors"

	"github.com/godbus/dbus/v5"
)

// Kind classifies a client failure.
type Kind int

const (
	// KindBusUnavailable means no system bus connection could be opened.
	KindBusUnavailable Kind = iota + 1
	// KindAllocationFailure means the outgoing message could not be built.
	KindAllocationFailure
	// KindTransportFailure means the call got no reply or an error reply.
	KindTransportFailure
	// KindMalformedReply means the reply did not carry a string variant.
	KindMalformedReply
	// KindInvalidArgument means the caller asked for something unsendable.
	KindInvalidArgument
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBusUnavailable:
		return "bus unavailable"
	case KindAllocationFailure:
		return "allocation failure"
	case KindTransportFailure:
		return "transport failure"
	case KindMalformedReply:
		return "malformed reply"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "unknown error"
	}
}

// Error is returned by every failed client operation.
type Error struct {
	Kind   Kind
	Op     string // operation that failed, e.g. "fetch active profile"
	Detail string // which check failed, for malformed replies and bad arguments
	Err    error  // underlying bus error, if any
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrBusUnavailable    = &Error{Kind: KindBusUnavailable}
	ErrAllocationFailure = &Error{Kind: KindAllocationFailure}
	ErrTransportFailure  = &Error{Kind: KindTransportFailure}
	ErrMalformedReply    = &Error{Kind: KindMalformedReply}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying bus error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// classifyCallError maps an error carried by a *dbus.Call to a Kind.
// Messages that godbus refuses to encode never left the process.
func classifyCallError(err error) Kind {
	var formatErr dbus.FormatError
	var invalidErr dbus.InvalidMessageError
	if errors.As(err, &formatErr) || errors.As(err, &invalidErr) {
		return KindAllocationFailure
	}
	return KindTransportFailure
}
