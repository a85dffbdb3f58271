package lang

import (
	"iter"
	"log/slog"
)

// Variable is a named, typed, optionally mutable scalar binding held
// directly by one scope.
type Variable struct {
	Name    string
	Value   Value
	Type    ValueType
	Mutable bool
	Temp    bool
}

// LogValue implements slog.LogValuer for trace output.
func (v *Variable) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", v.Name),
		slog.String("type", v.Type.String()),
		slog.String("value", v.Value.String()),
		slog.Bool("mutable", v.Mutable),
		slog.Bool("temp", v.Temp),
	)
}

// Scope is one node of the scope tree. It exclusively owns its variables
// and nested child scopes, and preserves insertion order for both so dumps
// and marshaled output are deterministic.
type Scope struct {
	vars       map[string]*Variable
	children   map[string]*Scope
	varOrder   []string
	childOrder []string
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{
		vars:     map[string]*Variable{},
		children: map[string]*Scope{},
	}
}

// Var returns the named variable held directly by this scope.
func (s *Scope) Var(name string) (*Variable, bool) {
	v, ok := s.vars[name]

	return v, ok
}

// Child returns the named nested scope.
func (s *Scope) Child(name string) (*Scope, bool) {
	c, ok := s.children[name]

	return c, ok
}

// Variables iterates this scope's variables in insertion order.
func (s *Scope) Variables() iter.Seq[*Variable] {
	return func(yield func(*Variable) bool) {
		for _, name := range s.varOrder {
			if !yield(s.vars[name]) {
				return
			}
		}
	}
}

// Children iterates this scope's nested scopes in insertion order,
// yielding each child's name and node.
func (s *Scope) Children() iter.Seq2[string, *Scope] {
	return func(yield func(string, *Scope) bool) {
		for _, name := range s.childOrder {
			if !yield(name, s.children[name]) {
				return
			}
		}
	}
}

// Len returns the number of variables held directly by this scope.
func (s *Scope) Len() int {
	return len(s.vars)
}

// IsEmpty reports whether the scope holds no variables and no children.
func (s *Scope) IsEmpty() bool {
	return len(s.vars) == 0 && len(s.children) == 0
}

// ensureChild returns the named nested scope, creating it on first use.
// This is the only place new scopes are constructed.
func (s *Scope) ensureChild(name string) *Scope {
	c, ok := s.children[name]
	if !ok {
		c = NewScope()
		s.children[name] = c
		s.childOrder = append(s.childOrder, name)
	}

	return c
}

// Assign writes a binding at the qualified path, creating any missing
// nested scopes along the way. If the terminal name already holds a
// binding whose stored mutable flag is false, the assignment fails with
// [ErrImmutableVariable] and the existing binding is untouched. The
// existing binding's mutability is authoritative, not the incoming one's.
func (s *Scope) Assign(path QualifiedPath, v Variable) error {
	if len(path) == 0 {
		return ErrInvalidLookupPath
	}

	dest := s
	for _, group := range path.Groups() {
		dest = dest.ensureChild(group)
	}

	name := path.Name()

	if old, ok := dest.vars[name]; ok {
		if !old.Mutable {
			return ErrImmutableVariable.With(
				slog.String("path", path.String()),
			)
		}

		// Reassignment replaces value and type; the definition's mutable
		// and temp flags are retained.
		old.Value = v.Value
		old.Type = v.Type

		return nil
	}

	v.Name = name
	dest.vars[name] = &v
	dest.varOrder = append(dest.varOrder, name)

	return nil
}

// Resolve descends through nested scopes named by all but the last path
// segment and fetches the last segment as a variable in the final scope.
func (s *Scope) Resolve(path QualifiedPath) (*Variable, error) {
	if len(path) == 0 {
		return nil, ErrInvalidLookupPath
	}

	cur := s
	for _, group := range path.Groups() {
		next, ok := cur.children[group]
		if !ok {
			return nil, ErrScopeNotFound.With(
				slog.String("scope", group),
				slog.String("path", path.String()),
			)
		}

		cur = next
	}

	v, ok := cur.vars[path.Name()]
	if !ok {
		return nil, ErrVariableNotFoundInScope.With(
			slog.String("variable", path.Name()),
			slog.String("path", path.String()),
		)
	}

	return v, nil
}
