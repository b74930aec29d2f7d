package protocol

import (
	"errors"
	"fmt"
)

// Error types for DICT protocol operations.
// Every failure of an exchange is reported as an *Error carrying a Kind,
// so callers can branch on the category without matching strings.

// Kind categorizes a protocol failure.
type Kind int

const (
	// KindConnection covers handshake failures, premature stream closure
	// and any I/O fault while a line was expected.
	//
	// Connection handling: connection is already broken, CLOSE it
	KindConnection Kind = iota + 1

	// KindProtocol means a status code or line shape did not match what the
	// exchange required: malformed status line, unexpected code, malformed
	// data row. Either the server is non-conformant or framing is lost.
	//
	// Connection handling: CLOSE, the stream position is unknown
	KindProtocol

	// KindInvalidDatabase is the server rejecting a database name (550).
	//
	// Connection handling: connection can be REUSED
	KindInvalidDatabase

	// KindInvalidStrategy is the server rejecting a strategy name (551).
	//
	// Connection handling: connection can be REUSED
	KindInvalidStrategy
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindProtocol:
		return "protocol error"
	case KindInvalidDatabase:
		return "invalid database"
	case KindInvalidStrategy:
		return "invalid strategy"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrConnection      = &Error{Kind: KindConnection}
	ErrProtocol        = &Error{Kind: KindProtocol}
	ErrInvalidDatabase = &Error{Kind: KindInvalidDatabase}
	ErrInvalidStrategy = &Error{Kind: KindInvalidStrategy}
)

// Error is a DICT failure tagged with its Kind.
type Error struct {
	Kind    Kind
	Message string // Additional context
	Line    string // Offending raw line, if any
	Err     error  // Underlying error, if any
}

func (e *Error) Error() string {
	msg := "dict: " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Line != "" {
		msg += fmt.Sprintf(" (line %q)", e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
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

// ShouldCloseConnection returns true unless the error is a rejected
// database or strategy name, which leaves the session in sync.
func (e *Error) ShouldCloseConnection() bool {
	return e.Kind != KindInvalidDatabase && e.Kind != KindInvalidStrategy
}

// NewConnectionError wraps an I/O failure that happened during op.
func NewConnectionError(op string, err error) *Error {
	return &Error{Kind: KindConnection, Message: op, Err: err}
}

// NewProtocolError reports an unexpected reply line.
func NewProtocolError(message, line string) *Error {
	return &Error{Kind: KindProtocol, Message: message, Line: line}
}

// UnexpectedStatus reports a status code the exchange did not expect.
func UnexpectedStatus(status Status) *Error {
	return &Error{
		Kind:    KindProtocol,
		Message: fmt.Sprintf("unexpected status %d", status.Code),
		Line:    status.Line(),
	}
}

// KindOf returns the Kind of err, or 0 if err is not a protocol error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ErrorWithConnectionState is an interface for errors that indicate
// whether the connection should be closed.
type ErrorWithConnectionState interface {
	error
	ShouldCloseConnection() bool
}

// ShouldCloseConnection is a helper function to determine if an error
// requires closing the connection.
//
// Returns false for nil, KindInvalidDatabase and KindInvalidStrategy.
// Unknown error types are treated as fatal.
func ShouldCloseConnection(err error) bool {
	if err == nil {
		return false
	}

	var e ErrorWithConnectionState
	if errors.As(err, &e) {
		return e.ShouldCloseConnection()
	}

	return true
}
