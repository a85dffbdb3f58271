package repl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/quill-lang/quill/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "tree", "edit", "clear", "quit"}

// isIdentRune reports whether r can appear in a quill identifier.
func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isWordBoundary reports whether r delimits a word for completion
// purposes. The arrow characters count as boundaries so each segment of
// a qualified path completes independently.
func isWordBoundary(r rune) bool {
	return !isIdentRune(r)
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Words are runs of identifier characters.
// Returns an empty word when the cursor sits on a boundary (after a
// space, after an arrow, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// parentGroups returns the arrow-chained group names leading up to the
// current word, outermost first. For input "x + server -> http -> ho"
// with the word "ho", the parent groups are [server http]. Returns nil
// for top-level words.
func parentGroups(input string, wordStart int) []string {
	prefix := strings.TrimRight(input[:wordStart], " \t")

	var groups []string

	for strings.HasSuffix(prefix, "->") {
		prefix = strings.TrimRight(strings.TrimSuffix(prefix, "->"), " \t")

		end := len(prefix)
		pos := end

		for pos > 0 {
			r, size := utf8.DecodeLastRuneInString(prefix[:pos])
			if !isIdentRune(r) {
				break
			}

			pos -= size
		}

		if pos == end {
			break
		}

		groups = append(groups, prefix[pos:end])
		prefix = strings.TrimRight(prefix[:pos], " \t")
	}

	reverseStrings(groups)

	return groups
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// resolveGroups descends the scope tree through the given group chain.
// Returns nil when any segment is not a nested scope.
func resolveGroups(root *lang.Scope, groups []string) *lang.Scope {
	cur := root

	for _, name := range groups {
		next, ok := cur.Child(name)
		if !ok {
			return nil
		}

		cur = next
	}

	return cur
}

// childCandidates returns the names that are valid completions under the
// given parent group chain: the variables and nested scopes held directly
// by the scope the chain resolves to.
func childCandidates(root *lang.Scope, groups []string) []string {
	scope := resolveGroups(root, groups)
	if scope == nil {
		return nil
	}

	var names []string

	for v := range scope.Variables() {
		names = append(names, v.Name)
	}

	for name := range scope.Children() {
		names = append(names, name)
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list,
// and the word boundaries. When the current word is empty at the top
// level, it returns nil matches. When the word is empty after an arrow,
// it returns all members of the parent scope so the user can browse.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		groups := parentGroups(input, wordStart)
		candidates = childCandidates(m.in.Root(), groups)

		// An empty word at the top level shows the hint text instead of
		// completions. After an arrow, all members are offered.
		if word == "" {
			if len(groups) == 0 || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within the given terminal width. Each candidate is rendered with
// its matched characters highlighted. The selected candidate (when
// tabbing) uses the selected style. Candidates naming nested scopes carry
// an arrow suffix.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	isScope func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected, isScope(match.Str))
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		// If this is the last candidate, no need to reserve ellipsis space.
		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Nested scopes are displayed with an "->" suffix.
func renderCandidate(match fuzzy.Match, selected, scope bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	// Suffix hint only; the completion inserts the bare name.
	if scope {
		b.WriteString(baseStyle.Render(" ->"))
	}

	return b.String()
}

// formatPreview generates a one-line preview for a top-level entry.
func formatPreview(s *lang.Scope, name string) string {
	if v, ok := s.Var(name); ok {
		suffix := ""
		if v.Mutable {
			suffix = " (muta)"
		}

		return fmt.Sprintf(": %s = %s%s", v.Type, v.Value, suffix)
	}

	if child, ok := s.Child(name); ok {
		vars := child.Len()

		groups := 0
		for range child.Children() {
			groups++
		}

		return fmt.Sprintf("{ %d bindings, %d groups }", vars, groups)
	}

	return ""
}
