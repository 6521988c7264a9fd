package errs

import (
	"errors"
	"fmt"
)

// Kind is the handling policy attached to an error.
type Kind int

const (
	// FatalStartup errors abort the process before any connection is served.
	FatalStartup Kind = iota
	// FatalIO errors abort the process from inside the accept loop.
	FatalIO
	// RecoverableIO errors are logged and the accept loop continues.
	RecoverableIO
)

func (k Kind) String() string {
	switch k {
	case FatalStartup:
		return "fatal startup"
	case FatalIO:
		return "fatal io"
	case RecoverableIO:
		return "recoverable io"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Op names the step that failed.
type Op int

const (
	OpConfigure Op = iota
	OpBind
	OpAccept
	OpOpen
	OpRead
	OpWrite
	OpFlush
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpConfigure:
		return "configure"
	case OpBind:
		return "bind"
	case OpAccept:
		return "accept"
	case OpOpen:
		return "open"
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpFlush:
		return "flush"
	case OpClose:
		return "close"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Error is the single error type returned by the acceptor and its helpers.
type Error struct {
	Kind    Kind
	Op      Op
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op.String()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s)", msg, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error.
func New(kind Kind, op Op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// Startup is shorthand for a FatalStartup error.
func Startup(op Op, message string, err error) *Error {
	return New(FatalStartup, op, message, err)
}

// KindOf reports the Kind of err. Errors that are not an *Error are FatalIO.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return FatalIO
}

// OpOf reports the Op of err and whether err carries one.
func OpOf(err error) (Op, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Op, true
	}
	return 0, false
}
