package lang

import "strings"

// QualifiedPath is an ordered list of group names followed by one terminal
// variable name. It addresses both assignment targets and lookups.
type QualifiedPath []string

// Groups returns every segment except the terminal variable name.
func (p QualifiedPath) Groups() []string {
	if len(p) == 0 {
		return nil
	}

	return p[:len(p)-1]
}

// Name returns the terminal variable name.
func (p QualifiedPath) Name() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// HasPrefix reports whether the path begins with every segment of prefix.
func (p QualifiedPath) HasPrefix(prefix []string) bool {
	if len(prefix) > len(p) {
		return false
	}

	for i, seg := range prefix {
		if p[i] != seg {
			return false
		}
	}

	return true
}

// String renders the path the way it appears in source text.
func (p QualifiedPath) String() string {
	return strings.Join(p, "-> ")
}

// buildForwardPath consumes a run of path-part tokens starting at index i,
// moving right. It returns the path and the index one past the run.
func buildForwardPath(tokens []AnnotatedToken, i int) (QualifiedPath, int) {
	var path QualifiedPath

	for ; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok.IsPathPart():
			path = append(path, tok.Literal)

		case tok.Role == RoleArrow:
			continue

		default:
			return path, i
		}
	}

	return path, i
}

// buildBackwardPath walks left from index i through arrow-linked path
// parts until a newline, assignment, or start of stream. The collected
// segments are reversed into declaration order.
func buildBackwardPath(tokens []AnnotatedToken, i int) QualifiedPath {
	var rev QualifiedPath

	for ; i >= 0; i-- {
		tok := tokens[i]

		switch {
		case tok.IsPathPart():
			rev = append(rev, tok.Literal)

		case tok.Role == RoleArrow,
			tok.Role == RoleType,
			tok.Role == RoleModifier:
			continue

		default:
			return reversePath(rev)
		}
	}

	return reversePath(rev)
}

func reversePath(rev QualifiedPath) QualifiedPath {
	for a, b := 0, len(rev)-1; a < b; a, b = a+1, b-1 {
		rev[a], rev[b] = rev[b], rev[a]
	}

	return rev
}
