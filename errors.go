package texmath

import (
	"fmt"

	jujuerrors "github.com/juju/errors"
)

// ErrorKind is the closed taxonomy of failure modes described in spec.md
// §7. It never grows at runtime; callers switch on it exhaustively.
type ErrorKind int

const (
	// Lexical errors (§7.1).
	UnexpectedCharacter ErrorKind = iota
	InvalidControlSequence
	InvalidDimension
	BadNumber

	// Macro errors (§7.2).
	UndefinedControlSequence
	MacroSuffixNotFound
	BuiltinRedefinition
	ExpansionTooDeep
	BadParameterIndex

	// Structural errors (§7.3).
	UnmatchedOpen
	UnmatchedClose
	UnmatchedRight
	EnvironmentMismatch
	UnknownEnvironment
	MismatchedGroup

	// Semantic errors (§7.4).
	DoubleScript
	InvalidScriptTarget
	LimitsInInvalidContext
	StrayAlignment
	StrayNewLine
	EmptyRadicand

	// Internal catch-all (§7.5).
	InternalTokenError
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case InvalidControlSequence:
		return "InvalidControlSequence"
	case InvalidDimension:
		return "InvalidDimension"
	case BadNumber:
		return "BadNumber"
	case UndefinedControlSequence:
		return "UndefinedControlSequence"
	case MacroSuffixNotFound:
		return "MacroSuffixNotFound"
	case BuiltinRedefinition:
		return "BuiltinRedefinition"
	case ExpansionTooDeep:
		return "ExpansionTooDeep"
	case BadParameterIndex:
		return "BadParameterIndex"
	case UnmatchedOpen:
		return "UnmatchedOpen"
	case UnmatchedClose:
		return "UnmatchedClose"
	case UnmatchedRight:
		return "UnmatchedRight"
	case EnvironmentMismatch:
		return "EnvironmentMismatch"
	case UnknownEnvironment:
		return "UnknownEnvironment"
	case MismatchedGroup:
		return "MismatchedGroup"
	case DoubleScript:
		return "DoubleScript"
	case InvalidScriptTarget:
		return "InvalidScriptTarget"
	case LimitsInInvalidContext:
		return "LimitsInInvalidContext"
	case StrayAlignment:
		return "StrayAlignment"
	case StrayNewLine:
		return "StrayNewLine"
	case EmptyRadicand:
		return "EmptyRadicand"
	default:
		return "Token"
	}
}

// Frame identifies one macro expansion or environment the parser was
// inside at the moment an error occurred, outermost first.
type Frame struct {
	// Name is the macro or environment name (without leading backslash).
	Name string
	// Span is where the frame was entered.
	Span Span
}

func (f Frame) String() string {
	return fmt.Sprintf("%s@%s", f.Name, f.Span)
}

// Error is the structured failure type returned by the Parser. It carries
// everything a caller needs to render a marker in place of the failing
// source fragment (§7, "User-visible behavior").
type Error struct {
	Kind  ErrorKind
	Span  Span
	Trace []Frame
	msg   string
	cause error
}

// newError builds an Error with the current frame trace. It wraps an
// underlying cause with juju/errors so Cause()/ErrorStack() keep working
// across annotation boundaries introduced by enclosing environments.
func newError(kind ErrorKind, span Span, trace []Frame, msg string) *Error {
	return &Error{
		Kind:  kind,
		Span:  span,
		Trace: append([]Frame(nil), trace...),
		msg:   msg,
		cause: jujuerrors.New(msg),
	}
}

// wrapError annotates an existing Error as it propagates out through one
// more environment frame, per §7's "full trace of macro and
// environment frames active at the point of failure". Macro frames come
// from the expander when the Error is created, not from wrapError.
func wrapError(err *Error, frame Frame) *Error {
	wrapped := &Error{
		Kind:  err.Kind,
		Span:  err.Span,
		Trace: append([]Frame{frame}, err.Trace...),
		msg:   err.msg,
		cause: jujuerrors.Annotatef(err.cause, "in %s", frame.Name),
	}
	return wrapped
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s @%s] %s", e.Kind, e.Span, e.msg)
}

// Cause returns the root error via juju/errors' cause chain, unwrapping
// any annotations added while propagating through environment frames.
func (e *Error) Cause() error {
	return jujuerrors.Cause(e.cause)
}

// StackTrace renders the juju/errors annotation chain as a single
// newline-separated string, one line per environment frame the error
// passed through.
func (e *Error) StackTrace() string {
	return jujuerrors.ErrorStack(e.cause)
}
