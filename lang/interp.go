package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/quill-lang/quill/log"
)

// Interpreter consumes an annotated token stream and builds the resolved
// scope tree. Each interpreter exclusively owns its root scope; there is
// no process-wide state.
type Interpreter struct {
	root *Scope
	sink io.Writer
	log  log.Logger
}

// InterpreterOption configures an [Interpreter].
type InterpreterOption func(*Interpreter)

// WithSink routes inspect directive output to the given writer.
// Without it inspect lines are discarded.
func WithSink(w io.Writer) InterpreterOption {
	return func(in *Interpreter) {
		in.sink = w
	}
}

// WithLogger sets the logger used for per-statement trace output.
func WithLogger(l log.Logger) InterpreterOption {
	return func(in *Interpreter) {
		in.log = l
	}
}

// NewInterpreter creates an interpreter with an empty root scope.
func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{
		root: NewScope(),
		sink: io.Discard,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Root returns the interpreter's root scope.
func (in *Interpreter) Root() *Scope {
	return in.root
}

// Lookup resolves a qualified path against the scope tree. It is the
// read-only entry point for tooling and inspection.
func (in *Interpreter) Lookup(path QualifiedPath) (*Variable, error) {
	return in.root.Resolve(path)
}

// Interpret scans the annotated stream once, top to bottom, committing
// each assignment into the scope tree and emitting inspect lines to the
// sink in source order. References only resolve to bindings committed by
// earlier statements. The first error aborts the whole operation.
func (in *Interpreter) Interpret(
	ctx context.Context,
	tokens []AnnotatedToken,
) (*Scope, error) {
	for i := 0; i < len(tokens); i++ {
		switch tokens[i].Role {
		case RoleNewline:
			if err := ctx.Err(); err != nil {
				return nil, err
			}

		case RoleAssign:
			err := in.assign(tokens, i)
			if err != nil {
				return nil, err
			}

		case RoleInspect:
			err := in.inspect(tokens, i)
			if err != nil {
				return nil, err
			}

		case RoleEOF:
			return in.root, nil
		}
	}

	return in.root, nil
}

// assign commits the statement surrounding the assignment token at index i.
func (in *Interpreter) assign(tokens []AnnotatedToken, i int) error {
	path, ident, err := buildAssignmentTarget(tokens, i)
	if err != nil {
		return err
	}

	value, err := in.resolveRHS(tokens, i, path)
	if err != nil {
		return err
	}

	declared := ident.ValueType
	if declared == TypeNull {
		declared = value.Type()
	}

	in.log.Trace("assign",
		slog.String("path", path.String()),
		slog.String("type", declared.String()),
		slog.String("value", value.String()),
	)

	err = in.root.Assign(path, Variable{
		Value:   value,
		Type:    declared,
		Mutable: ident.Mutable,
		Temp:    ident.Temp,
	})
	if err != nil {
		return WrapError(err).WithPosition(ident.Line, ident.Column)
	}

	return nil
}

// buildAssignmentTarget scans backward from the assignment token to the
// previous statement boundary, collecting group markers in encounter order
// and reversing them into declaration order, then locates the statement's
// identifier with its mutability flags.
func buildAssignmentTarget(
	tokens []AnnotatedToken,
	assign int,
) (QualifiedPath, AnnotatedToken, error) {
	var (
		groups QualifiedPath
		ident  AnnotatedToken
		found  bool
	)

scan:
	for j := assign - 1; j >= 0; j-- {
		tok := tokens[j]

		switch tok.Role {
		case RoleGroup:
			groups = append(groups, tok.Literal)

		case RoleIdentifier:
			if !found {
				ident = tok
				found = true
			}

		case RoleNewline, RoleOpenBrace, RoleCloseBrace,
			RoleAssign, RoleEOF:
			break scan
		}
	}

	if !found {
		at := tokens[assign]

		return nil, AnnotatedToken{}, ErrInvalidAssignment.WithPosition(
			at.Line, at.Column,
		)
	}

	reversePath(groups)

	return append(groups, ident.Literal), ident, nil
}

// resolveRHS produces the value committed by the assignment at index i.
// The token after the assignment is a literal value, an owned expression,
// or a reference chain resolved forward through the scope tree.
func (in *Interpreter) resolveRHS(
	tokens []AnnotatedToken,
	i int,
	dest QualifiedPath,
) (Value, error) {
	if i+1 >= len(tokens) {
		at := tokens[i]

		return Null(), ErrNoValueFoundAfterAssignment.WithPosition(
			at.Line, at.Column,
		)
	}

	rhs := tokens[i+1]

	switch rhs.Role {
	case RoleValue:
		return rhs.Value, nil

	case RoleExpression:
		return evalExpression(rhs.Expr, in.root)

	case RoleGroup, RoleIdentifier, RoleLookup:
		return in.resolveReference(tokens, i+1, dest)

	default:
		return Null(), ErrNoValueFoundAfterAssignment.WithPosition(
			rhs.Line, rhs.Column,
		)
	}
}

// resolveReference resolves a right-hand-side reference chain, applying
// the same-scope shorthand fallback: when the chain fails with a missing
// scope and its prefix names the destination's own group path, the
// remaining suffix is retried against the root. The original error is
// reported when the retry also misses.
func (in *Interpreter) resolveReference(
	tokens []AnnotatedToken,
	i int,
	dest QualifiedPath,
) (Value, error) {
	path, _ := buildForwardPath(tokens, i)

	v, err := in.root.Resolve(path)
	if err == nil {
		return v.Value, nil
	}

	destGroups := dest.Groups()

	if errors.Is(err, ErrScopeNotFound) &&
		len(destGroups) > 0 &&
		len(path) > len(destGroups) &&
		path.HasPrefix(destGroups) {
		v, retryErr := in.root.Resolve(path[len(destGroups):])
		if retryErr == nil {
			return v.Value, nil
		}
	}

	at := tokens[i]

	return Null(), WrapError(err).WithPosition(at.Line, at.Column)
}

// inspect emits one diagnostic line for the inspect token at index i,
// naming the qualified path, declared type, and current value of the
// reference immediately to its left.
func (in *Interpreter) inspect(tokens []AnnotatedToken, i int) error {
	at := tokens[i]
	path := buildBackwardPath(tokens, i-1)

	var line string

	if len(path) == 0 && i > 0 && tokens[i-1].Role == RoleValue {
		line = renderInspectValue(
			at.Line, at.Column, tokens[i-1].Literal, tokens[i-1].Value,
		)
	} else {
		line = renderInspect(at.Line, at.Column, path, in.root)
	}

	in.log.Trace("inspect",
		slog.String("path", path.String()),
		slog.String("output", line),
	)

	_, err := io.WriteString(in.sink, line+"\n")
	if err != nil {
		return WrapError(err).WithPosition(at.Line, at.Column)
	}

	return nil
}
