package repl

import (
	"slices"
	"testing"

	"github.com/quill-lang/quill/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"arrow_separated", "bar -> baz", 10, "baz", 7, 10},
		{"arrow_no_spaces", "bar->baz", 8, "baz", 5, 8},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "( fo", 4, "fo", 2, 4},
		{"after_assign", "x = fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscored", "max_count", 9, "max_count", 0, 9},
		// After an arrow is an empty word (triggers member completions).
		{"empty_after_arrow", "person -> ", 10, "", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentGroups(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      []string
	}{
		{"top_level", "fo", 0, nil},
		{"simple_chain", "bar -> baz -> ", 14, []string{"bar", "baz"}},
		{"no_spaces", "bar->baz->", 10, []string{"bar", "baz"}},
		{"after_operator", "foo + bar -> ", 13, []string{"bar"}},
		{"after_paren", "( bar -> ", 9, []string{"bar"}},
		{"no_chain", "a + ", 4, nil},
		{"deep_chain", "a->b->c->", 9, []string{"a", "b", "c"}},
		{"after_equals", "x = a -> b -> ", 14, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parentGroups(tt.input, tt.wordStart)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parentGroups(%q, %d) = %v, want %v",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func testScope(t *testing.T) *lang.Scope {
	t.Helper()

	root := lang.NewScope()

	assign := func(path lang.QualifiedPath, v lang.Value) {
		t.Helper()

		err := root.Assign(path, lang.Variable{Value: v, Type: v.Type()})
		if err != nil {
			t.Fatalf("Assign(%v): %v", path, err)
		}
	}

	assign(lang.QualifiedPath{"age"}, lang.NewInt(30))
	assign(lang.QualifiedPath{"person", "age"}, lang.NewInt(25))
	assign(lang.QualifiedPath{"person", "name"}, lang.NewStr("ada"))
	assign(lang.QualifiedPath{"person", "home", "city"}, lang.NewStr("london"))

	return root
}

func TestChildCandidates(t *testing.T) {
	root := testScope(t)

	tests := []struct {
		name   string
		groups []string
		want   []string
	}{
		{"top_level", nil, []string{"age", "person"}},
		{"nested", []string{"person"}, []string{"age", "name", "home"}},
		{"deep", []string{"person", "home"}, []string{"city"}},
		{"missing", []string{"nobody"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := childCandidates(root, tt.groups)
			if !slices.Equal(got, tt.want) {
				t.Errorf("childCandidates(%v) = %v, want %v",
					tt.groups, got, tt.want)
			}
		})
	}
}

func TestSplitArrowPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  lang.QualifiedPath
		ok    bool
	}{
		{"single", "age", lang.QualifiedPath{"age"}, true},
		{"chain", "person -> age", lang.QualifiedPath{"person", "age"}, true},
		{"no_spaces", "person->age", lang.QualifiedPath{"person", "age"}, true},
		{"empty_segment", "person -> ", nil, false},
		{"not_a_path", "1 + 2", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := splitArrowPath(tt.input)
			if ok != tt.ok || !slices.Equal(got, tt.want) {
				t.Errorf("splitArrowPath(%q) = (%v, %v), want (%v, %v)",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDetectPathHint(t *testing.T) {
	root := testScope(t)

	t.Run("variable", func(t *testing.T) {
		hint, ok := detectPathHint(root, "person -> age", 13)
		if !ok {
			t.Fatal("expected hint")
		}

		if hint.variable == nil || hint.variable.Name != "age" {
			t.Errorf("hint.variable = %v, want age", hint.variable)
		}

		if got := hint.path.String(); got != "person-> age" {
			t.Errorf("hint.path = %q", got)
		}
	})

	t.Run("scope", func(t *testing.T) {
		hint, ok := detectPathHint(root, "person -> home", 14)
		if !ok {
			t.Fatal("expected hint")
		}

		if hint.scope == nil {
			t.Error("hint.scope = nil, want nested scope")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, ok := detectPathHint(root, "nobody", 6); ok {
			t.Error("expected no hint for unknown name")
		}
	})

	t.Run("empty_word", func(t *testing.T) {
		if _, ok := detectPathHint(root, "person -> ", 10); ok {
			t.Error("expected no hint at boundary")
		}
	})
}
