package lang

import (
	"fmt"
	"io"
	"strings"
)

// renderInspect formats one inspect diagnostic line. Unresolvable paths
// render as "undefined"; an inspect with no reference to its left renders
// as "(nothing)".
func renderInspect(line, col int, path QualifiedPath, root *Scope) string {
	pos := fmt.Sprintf("[%d:%d]", line, col)

	if len(path) == 0 {
		return pos + " (nothing)"
	}

	v, err := root.Resolve(path)
	if err != nil {
		return fmt.Sprintf("%s %s : undefined", pos, path)
	}

	return fmt.Sprintf("%s %s : %s = %s", pos, path, v.Type, v.Value)
}

// renderInspectValue formats an inspect applied directly to a literal.
func renderInspectValue(line, col int, literal string, v Value) string {
	return fmt.Sprintf(
		"[%d:%d] %s : %s = %s", line, col, literal, v.Type(), v,
	)
}

// Dump writes every variable in the scope tree as one line of the form
// "<qualified path> : <type> = <value>", depth first in declaration
// order. Mutable bindings carry a "(muta)" suffix. Temporary bindings are
// resolvable during interpretation but excluded from output.
func Dump(w io.Writer, root *Scope) error {
	return dumpScope(w, root, nil)
}

func dumpScope(w io.Writer, s *Scope, prefix QualifiedPath) error {
	for v := range s.Variables() {
		if v.Temp {
			continue
		}

		path := append(append(QualifiedPath{}, prefix...), v.Name)

		line := fmt.Sprintf("%s : %s = %s", path, v.Type, v.Value)
		if v.Mutable {
			line += " (muta)"
		}

		_, err := io.WriteString(w, line+"\n")
		if err != nil {
			return err
		}
	}

	for name, child := range s.Children() {
		err := dumpScope(w, child, append(prefix, name))
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatStatements reserializes an annotated stream back to canonical
// source text, one line per original logical statement. Lookups that were
// never resolved stay as bare names; extracted expressions are rendered
// from their owned token runs.
func FormatStatements(w io.Writer, tokens []AnnotatedToken) error {
	var words []string

	flush := func() error {
		if len(words) == 0 {
			return nil
		}

		_, err := io.WriteString(w, strings.Join(words, " ")+"\n")
		words = words[:0]

		return err
	}

	for _, tok := range tokens {
		switch tok.Role {
		case RoleNewline:
			err := flush()
			if err != nil {
				return err
			}

		case RoleEOF:
			return flush()

		case RoleType:
			words = append(words, ":", tok.Literal)

		case RoleExpression:
			words = append(words, formatExpr(tok.Expr))

		case RoleValue:
			words = append(words, formatValueLiteral(tok.Value))

		default:
			words = append(words, tok.Literal)
		}
	}

	return flush()
}

func formatExpr(expr []AnnotatedToken) string {
	parts := make([]string, 0, len(expr))

	for _, tok := range expr {
		if tok.Role == RoleValue {
			parts = append(parts, formatValueLiteral(tok.Value))

			continue
		}

		parts = append(parts, tok.Literal)
	}

	return strings.Join(parts, " ")
}

// formatValueLiteral renders a value as a source-level literal, quoting
// strings so the output parses back to the same value.
func formatValueLiteral(v Value) string {
	if v.Type() == TypeString {
		return fmt.Sprintf("%q", v.Str())
	}

	return v.String()
}
