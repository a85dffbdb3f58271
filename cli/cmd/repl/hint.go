package repl

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/quill-lang/quill/lang"
)

// pathHint describes the binding or scope named by the qualified path
// under the cursor, when it resolves against the session tree.
type pathHint struct {
	path     lang.QualifiedPath
	variable *lang.Variable
	scope    *lang.Scope
}

// detectPathHint resolves the arrow path ending at the cursor word.
// Returns false when the word is empty or nothing in the tree matches.
func detectPathHint(root *lang.Scope, input string, cursor int) (pathHint, bool) {
	word, wordStart, _ := wordBounds(input, cursor)
	if word == "" {
		return pathHint{}, false
	}

	groups := parentGroups(input, wordStart)
	path := lang.QualifiedPath(append(append([]string{}, groups...), word))

	parent := resolveGroups(root, groups)
	if parent == nil {
		return pathHint{}, false
	}

	if v, ok := parent.Var(word); ok {
		return pathHint{path: path, variable: v}, true
	}

	if child, ok := parent.Child(word); ok {
		return pathHint{path: path, scope: child}, true
	}

	return pathHint{}, false
}

// renderPathHint formats the hint line shown under the input while the
// cursor names a known binding or scope.
func renderPathHint(h pathHint) string {
	name := lipgloss.NewStyle().Bold(true).Render(h.path.String())

	if h.variable != nil {
		suffix := ""
		if h.variable.Mutable {
			suffix = " (muta)"
		}

		return hintStyle.Render(fmt.Sprintf(
			"%s : %s = %s%s",
			name, h.variable.Type, h.variable.Value, suffix,
		))
	}

	groups := 0
	for range h.scope.Children() {
		groups++
	}

	return hintStyle.Render(fmt.Sprintf(
		"%s { %d bindings, %d groups }",
		name, h.scope.Len(), groups,
	))
}
