package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every error is fatal to the current file: the annotate or interpret
// operation fully succeeds or fully fails, with no per-statement recovery.
var (
	// Annotation errors.
	ErrMultipleAssignments = NewError("multiple assignments in statement")
	ErrEmptyExpression     = NewError("assignment has no value")
	ErrDoubleIdentifier    = NewError("consecutive identifiers")
	ErrMalformedGroupOpen  = NewError("no group name before opening brace")

	// Interpretation errors.
	ErrScopeNotFound               = NewError("scope not found")
	ErrVariableNotFoundInScope     = NewError("variable not found in scope")
	ErrInvalidLookupPath           = NewError("invalid lookup path")
	ErrInvalidAssignment           = NewError("invalid assignment target")
	ErrNoValueFoundAfterAssignment = NewError("no value found after assignment")
	ErrImmutableVariable           = NewError("cannot reassign immutable variable")

	// Evaluation errors.
	ErrNotEnoughOperands = NewError("not enough operands")
	ErrDivisionByZero    = NewError("division by zero")
	ErrModuloByZero      = NewError("modulo by zero")
	ErrInvalidExpression = NewError("invalid token in expression")

	// Input errors.
	ErrReadInput = NewError("failed to read input")
)

// Position locates an error in source text. Line and Column are 1-based;
// a zero Position means the location is unknown.
type Position struct {
	Line   int
	Column int
}

// IsZero reports whether the position is unset.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// String renders the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Error represents an error with optional structured logging attributes and
// source position. It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	pos   Position
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	msg := strings.Join(part, ": ")
	if !e.pos.IsZero() {
		msg += " at " + e.pos.String()
	}

	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this error was derived
// from. Derived errors share the sentinel's message.
func (e *Error) Is(target error) bool {
	te := &Error{}
	if errors.As(target, &te) {
		return e.msg == te.msg
	}

	return false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if !e.pos.IsZero() {
		attrs = append(attrs, slog.String("pos", e.pos.String()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
		pos:   e.pos,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		pos:   e.pos,
	}
}

// WithPosition attaches a source position to the error.
func (e *Error) WithPosition(line, column int) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: e.attrs,
		pos:   Position{Line: line, Column: column},
	}
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() Position {
	return e.pos
}
