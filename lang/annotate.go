package lang

import (
	"log/slog"
	"strconv"

	"github.com/quill-lang/quill/lang/token"
)

// Role is the semantic classification the annotator resolves for each token.
type Role int

const (
	// RoleGroup marks an identifier used as a namespace path segment.
	RoleGroup Role = iota

	// RoleIdentifier marks a definition target, the left side of an
	// assignment or the subject of an inspect directive.
	RoleIdentifier

	// RoleLookup marks a reference to a previously committed binding.
	RoleLookup

	// RoleType marks a merged type annotation (": [const] type").
	RoleType

	// RoleValue marks a scalar literal with its parsed Value.
	RoleValue

	// RoleOperator marks arithmetic operators and parentheses.
	RoleOperator

	// RoleArrow, RoleAssign, and RoleInspect mark the structural
	// punctuation they are named for.
	RoleArrow
	RoleAssign
	RoleInspect

	// RoleOpenBrace and RoleCloseBrace delimit scope blocks.
	RoleOpenBrace
	RoleCloseBrace

	// RoleNewline terminates a logical statement.
	RoleNewline

	// RoleModifier marks a muta or temp keyword.
	RoleModifier

	// RoleExpression marks a placeholder owning a cloned arithmetic
	// token run awaiting evaluation.
	RoleExpression

	// RoleEOF terminates the annotated stream.
	RoleEOF
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleGroup:
		return "Group"
	case RoleIdentifier:
		return "Identifier"
	case RoleLookup:
		return "Lookup"
	case RoleType:
		return "Type"
	case RoleValue:
		return "Value"
	case RoleOperator:
		return "Operator"
	case RoleArrow:
		return "Arrow"
	case RoleAssign:
		return "Assign"
	case RoleInspect:
		return "Inspect"
	case RoleOpenBrace:
		return "OpenBrace"
	case RoleCloseBrace:
		return "CloseBrace"
	case RoleNewline:
		return "Newline"
	case RoleModifier:
		return "Modifier"
	case RoleExpression:
		return "Expression"
	case RoleEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// AnnotatedToken is a token with its resolved semantic role. Annotated
// tokens are produced once per pass and read-only thereafter.
type AnnotatedToken struct {
	token.Token

	// Expr holds the owned clone of an arithmetic token run when Role is
	// RoleExpression. It is nil for every other role.
	Expr []AnnotatedToken

	Role      Role
	ValueType ValueType
	Value     Value
	Mutable   bool
	Temp      bool
}

// IsPathPart reports whether the token can form a segment of a qualified
// path.
func (a AnnotatedToken) IsPathPart() bool {
	switch a.Role {
	case RoleGroup, RoleIdentifier, RoleLookup:
		return true
	default:
		return false
	}
}

// LogValue implements slog.LogValuer for trace output.
func (a AnnotatedToken) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("role", a.Role.String()),
		slog.String("literal", a.Literal),
		slog.Int("line", a.Line),
		slog.Int("col", a.Column),
	)
}

// groupFrame tracks one open brace block during the annotation pass.
type groupFrame struct {
	name       string
	memberType ValueType
}

// annotator holds the single-pass state for one token stream.
type annotator struct {
	raw    []token.Token
	out    []AnnotatedToken
	frames []groupFrame

	// Per-statement state, reset at every newline and brace.
	pendingIdent int // index into out, -1 when none
	assignSeen   bool
	prefixed     bool
	pendingMuta  bool
	pendingTemp  bool
}

// Annotate resolves the semantic role of every token in a raw stream.
// The returned stream splices ambient group markers ahead of statements
// inside brace blocks, merges type annotations into single tokens, and
// extracts arithmetic right-hand sides into owned expression runs.
//
// Structural failures abort the whole pass; no partial output is returned.
func Annotate(tokens []token.Token) ([]AnnotatedToken, error) {
	a := &annotator{
		raw:          tokens,
		out:          make([]AnnotatedToken, 0, len(tokens)),
		pendingIdent: -1,
	}

	return a.run()
}

func (a *annotator) run() ([]AnnotatedToken, error) {
	for i := 0; i < len(a.raw); i++ {
		tok := a.raw[i]

		var err error

		switch tok.Kind {
		case token.Newline:
			a.emit(tok, RoleNewline)
			a.resetStatement()

		case token.OpenBrace:
			err = a.openGroup(i)

		case token.CloseBrace:
			if len(a.frames) > 0 {
				a.frames = a.frames[:len(a.frames)-1]
			}

			a.emit(tok, RoleCloseBrace)
			a.resetStatement()

		case token.Identifier:
			err = a.identifier(i)

		case token.Colon:
			i = a.typeAnnotation(i)

		case token.Assign:
			i, err = a.assignment(i)

		case token.Muta:
			a.modifier(tok, true, false)

		case token.Temp:
			a.modifier(tok, false, true)

		case token.Arrow:
			a.emit(tok, RoleArrow)

		case token.Inspect:
			a.emit(tok, RoleInspect)

		case token.IntLit, token.FloatLit, token.StringLit, token.BoolLit:
			a.literal(tok)

		case token.Plus, token.Minus, token.Star, token.Slash,
			token.Percent, token.Caret,
			token.OpenParen, token.CloseParen:
			a.emit(tok, RoleOperator)

		case token.TypeName:
			// A bare type name outside a ":" annotation, as in a typed
			// group header already consumed by openGroup lookback.
			at := a.emit(tok, RoleType)
			at.ValueType = ParseValueType(tok.Literal)

		case token.Const:
			// Bare const outside a type annotation restates the default.
			a.emit(tok, RoleModifier)

		case token.EOF:
			a.emit(tok, RoleEOF)

		default:
			a.emit(tok, RoleOperator)
		}

		if err != nil {
			return nil, err
		}
	}

	return a.out, nil
}

// emit appends an annotated token and returns a pointer to it for
// follow-up adjustment.
func (a *annotator) emit(tok token.Token, role Role) *AnnotatedToken {
	a.out = append(a.out, AnnotatedToken{Token: tok, Role: role})

	return &a.out[len(a.out)-1]
}

func (a *annotator) resetStatement() {
	a.pendingIdent = -1
	a.assignSeen = false
	a.prefixed = false
	a.pendingMuta = false
	a.pendingTemp = false
}

// openGroup locates the group's name by walking back through the raw
// stream from the opening brace: two tokens for "name -> {", four for a
// typed header "name -> : type {". The frame records the shared member
// type so bare definitions inside the block inherit it.
func (a *annotator) openGroup(i int) error {
	frame := groupFrame{}

	switch {
	case i >= 2 &&
		a.raw[i-1].Kind == token.Arrow &&
		a.raw[i-2].Kind == token.Identifier:
		frame.name = a.raw[i-2].Literal

	case i >= 4 &&
		a.raw[i-1].Kind == token.TypeName &&
		a.raw[i-2].Kind == token.Colon &&
		a.raw[i-3].Kind == token.Arrow &&
		a.raw[i-4].Kind == token.Identifier:
		frame.name = a.raw[i-4].Literal
		frame.memberType = ParseValueType(a.raw[i-1].Literal)

	default:
		return ErrMalformedGroupOpen.WithPosition(
			a.raw[i].Line, a.raw[i].Column,
		)
	}

	a.frames = append(a.frames, frame)
	a.emit(a.raw[i], RoleOpenBrace)
	a.resetStatement()

	return nil
}

// identifier classifies one identifier token. Inside brace blocks the
// first identifier of a statement is preceded by one spliced group marker
// per open frame so the statement carries its full qualified context.
func (a *annotator) identifier(i int) error {
	tok := a.raw[i]

	if i > 0 && a.raw[i-1].Kind == token.Identifier {
		return ErrDoubleIdentifier.WithPosition(tok.Line, tok.Column)
	}

	if len(a.frames) > 0 && !a.prefixed && !a.assignSeen {
		for _, f := range a.frames {
			at := a.emit(token.Make(
				token.Identifier, f.name, tok.Line, tok.Column,
			), RoleGroup)
			at.ValueType = f.memberType
		}

		a.prefixed = true
	}

	// An identifier followed by "->" is an inline path segment unless the
	// arrow opens a brace block or a typed group header.
	if i+2 < len(a.raw) && a.raw[i+1].Kind == token.Arrow {
		after := a.raw[i+2].Kind
		if after != token.OpenBrace && after != token.Colon {
			a.emit(tok, RoleGroup)

			return nil
		}
	}

	if a.assignSeen {
		a.emit(tok, RoleLookup)

		return nil
	}

	at := a.emit(tok, RoleIdentifier)
	at.ValueType = a.inheritedType()
	at.Mutable = a.pendingMuta
	at.Temp = a.pendingTemp

	a.pendingIdent = len(a.out) - 1
	a.pendingMuta = false
	a.pendingTemp = false

	return nil
}

// inheritedType returns the member type of the innermost typed frame.
func (a *annotator) inheritedType() ValueType {
	for j := len(a.frames) - 1; j >= 0; j-- {
		if a.frames[j].memberType != TypeNull {
			return a.frames[j].memberType
		}
	}

	return TypeNull
}

// typeAnnotation merges a ": [const] type" run into one annotated token so
// the statement's identifier stays a fixed distance from its assignment.
// It returns the index of the last raw token consumed.
func (a *annotator) typeAnnotation(i int) int {
	tok := a.raw[i]
	next := i + 1

	isConst := false
	if next < len(a.raw) && a.raw[next].Kind == token.Const {
		isConst = true
		next++
	}

	if next >= len(a.raw) || a.raw[next].Kind != token.TypeName {
		// A stray colon with no type name keeps its own slot.
		a.emit(tok, RoleType)

		return i
	}

	typeTok := a.raw[next]

	at := a.emit(token.Make(
		token.TypeName, typeTok.Literal, tok.Line, tok.Column,
	), RoleType)
	at.ValueType = ParseValueType(typeTok.Literal)
	at.Mutable = !isConst && a.pendingMuta

	if a.pendingIdent >= 0 {
		a.out[a.pendingIdent].ValueType = at.ValueType
		if isConst {
			a.out[a.pendingIdent].Mutable = false
		}
	}

	return next
}

// modifier applies a muta or temp keyword to the statement's identifier.
// The keyword may precede the identifier or trail its type annotation.
func (a *annotator) modifier(tok token.Token, muta, temp bool) {
	a.emit(tok, RoleModifier)

	if a.pendingIdent >= 0 {
		if muta {
			a.out[a.pendingIdent].Mutable = true
		}

		if temp {
			a.out[a.pendingIdent].Temp = true
		}

		return
	}

	a.pendingMuta = a.pendingMuta || muta
	a.pendingTemp = a.pendingTemp || temp
}

// literal emits a scalar literal with its parsed value.
func (a *annotator) literal(tok token.Token) {
	at := a.emit(tok, RoleValue)
	at.Value = parseLiteral(tok)
	at.ValueType = at.Value.Type()
}

func parseLiteral(tok token.Token) Value {
	switch tok.Kind {
	case token.IntLit:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			// Out-of-range integers degrade to floats.
			f, _ := strconv.ParseFloat(tok.Literal, 64)

			return NewFloat(f)
		}

		return NewInt(n)

	case token.FloatLit:
		f, _ := strconv.ParseFloat(tok.Literal, 64)

		return NewFloat(f)

	case token.StringLit:
		return NewStr(tok.Literal)

	case token.BoolLit:
		return NewBool(tok.Literal == "true")

	default:
		return Null()
	}
}

// assignment emits the assign token and decides how the right-hand side is
// represented. A side containing arithmetic is cloned into one owned
// expression token; a plain value or reference chain is annotated in
// place. It returns the index of the last raw token consumed.
func (a *annotator) assignment(i int) (int, error) {
	tok := a.raw[i]

	if a.assignSeen {
		return i, ErrMultipleAssignments.WithPosition(tok.Line, tok.Column)
	}

	a.assignSeen = true
	a.emit(tok, RoleAssign)

	end := i + 1
	hasArith := false

	for end < len(a.raw) {
		k := a.raw[end]
		if k.Kind == token.Newline || k.Kind == token.EOF {
			break
		}

		if k.Kind == token.Assign {
			return i, ErrMultipleAssignments.WithPosition(k.Line, k.Column)
		}

		if k.IsArithmetic() ||
			k.Kind == token.OpenParen || k.Kind == token.CloseParen {
			hasArith = true
		}

		end++
	}

	if end == i+1 {
		return i, ErrEmptyExpression.WithPosition(tok.Line, tok.Column)
	}

	if !hasArith {
		return i, nil
	}

	at := a.emit(a.raw[i+1], RoleExpression)
	at.Expr = annotateExpr(a.raw[i+1 : end])

	return end - 1, nil
}

// annotateExpr clones an arithmetic token run, inserting an implicit
// multiplication at every juxtaposition boundary: an operand directly
// before "(" or directly after ")".
func annotateExpr(run []token.Token) []AnnotatedToken {
	out := make([]AnnotatedToken, 0, len(run)+2)

	for i, tok := range run {
		if i > 0 && implicitStarBetween(run[i-1], tok) {
			out = append(out, AnnotatedToken{
				Token: token.Make(token.Star, "*", tok.Line, tok.Column),
				Role:  RoleOperator,
			})
		}

		at := AnnotatedToken{Token: tok}

		switch {
		case tok.IsLiteral():
			at.Role = RoleValue
			at.Value = parseLiteral(tok)
			at.ValueType = at.Value.Type()

		case tok.Kind == token.Identifier:
			at.Role = RoleLookup

		default:
			at.Role = RoleOperator
		}

		out = append(out, at)
	}

	return out
}

func implicitStarBetween(prev, cur token.Token) bool {
	isOperand := func(t token.Token) bool {
		return t.IsLiteral() || t.Kind == token.Identifier
	}

	if isOperand(prev) && cur.Kind == token.OpenParen {
		return true
	}

	if prev.Kind == token.CloseParen && isOperand(cur) {
		return true
	}

	return false
}
