package lang

import (
	"errors"
	"testing"

	"github.com/quill-lang/quill/lang/lexer"
	"github.com/quill-lang/quill/lang/token"
)

func annotate(t *testing.T, src string) []AnnotatedToken {
	t.Helper()

	raw, err := lexer.LexString(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	out, err := Annotate(raw)
	if err != nil {
		t.Fatalf("annotate error: %v", err)
	}

	return out
}

func roles(tokens []AnnotatedToken) []Role {
	out := make([]Role, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Role
	}

	return out
}

func TestAnnotate_Roles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Role
	}{
		{
			name:  "typed assignment",
			input: "x : int = 5",
			want: []Role{
				RoleIdentifier, RoleType, RoleAssign, RoleValue, RoleEOF,
			},
		},
		{
			name:  "inline qualified path",
			input: "person -> age : int = 25",
			want: []Role{
				RoleGroup, RoleArrow, RoleIdentifier, RoleType,
				RoleAssign, RoleValue, RoleEOF,
			},
		},
		{
			name:  "lookup after assignment",
			input: "nested : int = x",
			want: []Role{
				RoleIdentifier, RoleType, RoleAssign, RoleLookup, RoleEOF,
			},
		},
		{
			name:  "inspect directive",
			input: "person -> age ?",
			want: []Role{
				RoleGroup, RoleArrow, RoleIdentifier, RoleInspect, RoleEOF,
			},
		},
		{
			name:  "qualified reference on right side",
			input: "x = person -> age",
			want: []Role{
				RoleIdentifier, RoleAssign, RoleGroup, RoleArrow,
				RoleLookup, RoleEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roles(annotate(t, tt.input))

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d roles, got %d: %v", len(tt.want), len(got), got)
			}

			for i, r := range tt.want {
				if got[i] != r {
					t.Errorf("token %d: expected %v, got %v", i, r, got[i])
				}
			}
		})
	}
}

func TestAnnotate_BraceBlockSplicing(t *testing.T) {
	got := annotate(t, "person -> {\nage : int = 25\n}\n")

	want := []Role{
		RoleIdentifier, RoleArrow, RoleOpenBrace, RoleNewline,
		RoleGroup, RoleIdentifier, RoleType, RoleAssign, RoleValue,
		RoleNewline, RoleCloseBrace, RoleNewline, RoleEOF,
	}

	gotRoles := roles(got)
	if len(gotRoles) != len(want) {
		t.Fatalf("expected %d roles, got %d: %v", len(want), len(gotRoles), gotRoles)
	}

	for i, r := range want {
		if gotRoles[i] != r {
			t.Errorf("token %d: expected %v, got %v", i, r, gotRoles[i])
		}
	}

	if got[4].Literal != "person" {
		t.Errorf("expected spliced group %q, got %q", "person", got[4].Literal)
	}

	if got[5].Literal != "age" {
		t.Errorf("expected identifier %q, got %q", "age", got[5].Literal)
	}
}

func TestAnnotate_NestedBlockSplicing(t *testing.T) {
	got := annotate(t, "outer -> {\ninner -> {\nv = 1\n}\n}\n")

	// The statement defining v must carry both ambient group markers in
	// declaration order.
	var spliced []string

	for i, tok := range got {
		if tok.Role == RoleIdentifier && tok.Literal == "v" {
			for j := i - 1; j >= 0 && got[j].Role == RoleGroup; j-- {
				spliced = append([]string{got[j].Literal}, spliced...)
			}
		}
	}

	if len(spliced) != 2 || spliced[0] != "outer" || spliced[1] != "inner" {
		t.Fatalf("expected spliced groups [outer inner], got %v", spliced)
	}
}

func TestAnnotate_TypedGroupInheritance(t *testing.T) {
	got := annotate(t, "point -> : int {\nx = 1\n}\n")

	for _, tok := range got {
		if tok.Role == RoleIdentifier && tok.Literal == "x" {
			if tok.ValueType != TypeInt {
				t.Errorf("expected inherited type int, got %v", tok.ValueType)
			}

			return
		}
	}

	t.Fatal("identifier x not found in annotated stream")
}

func TestAnnotate_TypeAnnotationMerge(t *testing.T) {
	got := annotate(t, "x : int = 5")

	ident, typ := got[0], got[1]

	if ident.ValueType != TypeInt {
		t.Errorf("expected identifier type int, got %v", ident.ValueType)
	}

	if typ.Role != RoleType || typ.Literal != "int" {
		t.Errorf("expected merged type token, got %v %q", typ.Role, typ.Literal)
	}
}

func TestAnnotate_Modifiers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ident   string
		mutable bool
		temp    bool
	}{
		{name: "muta before identifier", input: "muta x = 5", ident: "x", mutable: true},
		{name: "muta after type", input: "x : int muta = 5", ident: "x", mutable: true},
		{name: "temp before identifier", input: "temp secret = 1", ident: "secret", temp: true},
		{name: "const overrides muta", input: "muta b : const int = 1", ident: "b"},
		{name: "default immutable", input: "x = 1", ident: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := annotate(t, tt.input)

			for _, tok := range got {
				if tok.Role != RoleIdentifier || tok.Literal != tt.ident {
					continue
				}

				if tok.Mutable != tt.mutable {
					t.Errorf("expected mutable=%v, got %v", tt.mutable, tok.Mutable)
				}

				if tok.Temp != tt.temp {
					t.Errorf("expected temp=%v, got %v", tt.temp, tok.Temp)
				}

				return
			}

			t.Fatalf("identifier %q not found", tt.ident)
		})
	}
}

func TestAnnotate_ExpressionExtraction(t *testing.T) {
	got := annotate(t, "a : int = 2 (3 + 4)")

	var expr *AnnotatedToken

	for i := range got {
		if got[i].Role == RoleExpression {
			expr = &got[i]

			break
		}
	}

	if expr == nil {
		t.Fatal("no expression token in annotated stream")
	}

	// 2 * ( 3 + 4 ) with the implicit multiplication inserted.
	want := []string{"2", "*", "(", "3", "+", "4", ")"}

	if len(expr.Expr) != len(want) {
		t.Fatalf("expected %d expression tokens, got %d", len(want), len(expr.Expr))
	}

	for i, lit := range want {
		if expr.Expr[i].Literal != lit {
			t.Errorf("expression token %d: expected %q, got %q",
				i, lit, expr.Expr[i].Literal)
		}
	}

	if expr.Expr[1].Kind != token.Star {
		t.Errorf("expected implicit Star, got %v", expr.Expr[1].Kind)
	}
}

func TestAnnotate_ImplicitStarAfterParen(t *testing.T) {
	got := annotate(t, "a = (1 + 2) 3")

	for _, tok := range got {
		if tok.Role != RoleExpression {
			continue
		}

		want := []string{"(", "1", "+", "2", ")", "*", "3"}
		if len(tok.Expr) != len(want) {
			t.Fatalf("expected %d expression tokens, got %d", len(want), len(tok.Expr))
		}

		for i, lit := range want {
			if tok.Expr[i].Literal != lit {
				t.Errorf("expression token %d: expected %q, got %q",
					i, lit, tok.Expr[i].Literal)
			}
		}

		return
	}

	t.Fatal("no expression token in annotated stream")
}

func TestAnnotate_PlainRHSNotExtracted(t *testing.T) {
	got := annotate(t, "x = 5")

	for _, tok := range got {
		if tok.Role == RoleExpression {
			t.Fatal("plain literal right side must not become an expression")
		}
	}
}

func TestAnnotate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "double assignment", input: "x = 1 = 2", want: ErrMultipleAssignments},
		{name: "empty right side", input: "x =", want: ErrEmptyExpression},
		{name: "empty right side before newline", input: "x =\ny = 1", want: ErrEmptyExpression},
		{name: "consecutive identifiers", input: "x y = 1", want: ErrDoubleIdentifier},
		{name: "orphan brace", input: "{", want: ErrMalformedGroupOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := lexer.LexString(tt.input)
			if err != nil {
				t.Fatalf("lex error: %v", err)
			}

			_, err = Annotate(raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
