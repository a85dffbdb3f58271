// Package token defines the lexical token stream consumed by the quill
// annotator. Tokens are produced once by the lexer and never mutated.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// EOF terminates every token stream.
	EOF Kind = iota

	// Newline ends a logical statement line.
	Newline

	// Identifier names a variable or group.
	Identifier

	// Arrow is the group separator "->".
	Arrow

	// Colon is the type-assign operator ":".
	Colon

	// Assign is the value-assign operator "=".
	Assign

	// Inspect is the inspect directive "?".
	Inspect

	// OpenBrace and CloseBrace delimit scope blocks.
	OpenBrace
	CloseBrace

	// OpenParen and CloseParen group sub-expressions.
	OpenParen
	CloseParen

	// Arithmetic operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Caret

	// Scalar literals.
	IntLit
	FloatLit
	StringLit
	BoolLit

	// TypeName is one of the scalar type keywords: int, float, string, bool.
	TypeName

	// Modifier keywords.
	Muta
	Temp
	Const
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case Identifier:
		return "Identifier"
	case Arrow:
		return "Arrow"
	case Colon:
		return "Colon"
	case Assign:
		return "Assign"
	case Inspect:
		return "Inspect"
	case OpenBrace:
		return "OpenBrace"
	case CloseBrace:
		return "CloseBrace"
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case Percent:
		return "Percent"
	case Caret:
		return "Caret"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case StringLit:
		return "StringLit"
	case BoolLit:
		return "BoolLit"
	case TypeName:
		return "TypeName"
	case Muta:
		return "Muta"
	case Temp:
		return "Temp"
	case Const:
		return "Const"
	default:
		return "Unknown"
	}
}

// Token is a single lexical token with its source position.
// Line and Column are 1-based.
type Token struct {
	Literal string
	Kind    Kind
	Line    int
	Column  int
}

// Make constructs a token. Positions default to zero for synthetic tokens.
func Make(kind Kind, literal string, line, column int) Token {
	return Token{
		Literal: literal,
		Kind:    kind,
		Line:    line,
		Column:  column,
	}
}

// String returns a compact representation for diagnostics.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Literal, t.Line, t.Column)
}

// IsLiteral reports whether the token is a scalar literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, BoolLit:
		return true
	default:
		return false
	}
}

// IsArithmetic reports whether the token is an arithmetic operator.
// Parentheses are not arithmetic operators.
func (t Token) IsArithmetic() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Caret:
		return true
	default:
		return false
	}
}
