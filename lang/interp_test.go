package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// interpret runs source through the full pipeline and returns the scope
// tree plus the collected inspect output.
func interpret(t *testing.T, src string) (*Scope, string) {
	t.Helper()

	var sink bytes.Buffer

	in := NewInterpreter(WithSink(&sink))

	root, err := in.Interpret(context.Background(), annotate(t, src))
	if err != nil {
		t.Fatalf("interpret error: %v", err)
	}

	return root, sink.String()
}

func TestInterpret_SimpleBindings(t *testing.T) {
	root, out := interpret(t, "x : int = 5\nnested : int = x\nx ?\nnested ?\n")

	for _, name := range []string{"x", "nested"} {
		v, err := root.Resolve(QualifiedPath{name})
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}

		if v.Type != TypeInt || v.Value.Int() != 5 {
			t.Errorf("%s: expected int 5, got %v %v", name, v.Type, v.Value)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 inspect lines, got %d: %q", len(lines), out)
	}

	if !strings.HasSuffix(lines[0], "x : int = 5") {
		t.Errorf("unexpected inspect line: %q", lines[0])
	}

	if !strings.HasSuffix(lines[1], "nested : int = 5") {
		t.Errorf("unexpected inspect line: %q", lines[1])
	}
}

func TestInterpret_QualifiedInspect(t *testing.T) {
	_, out := interpret(t, "person -> age : int = 25\nperson -> age ?\n")

	want := "person-> age : int = 25"
	if !strings.HasSuffix(strings.TrimSpace(out), want) {
		t.Errorf("expected inspect ending %q, got %q", want, out)
	}
}

func TestInterpret_ImplicitMultiplication(t *testing.T) {
	root, _ := interpret(t, "a : int = 2 (3 + 4)\n")

	v, err := root.Resolve(QualifiedPath{"a"})
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Value.Int() != 14 {
		t.Errorf("expected 14, got %v", v.Value)
	}
}

func TestInterpret_ImmutableReassignment(t *testing.T) {
	in := NewInterpreter()

	_, err := in.Interpret(
		context.Background(),
		annotate(t, "b : const int = 1\nb : const int = 2\n"),
	)
	if !errors.Is(err, ErrImmutableVariable) {
		t.Fatalf("expected ErrImmutableVariable, got %v", err)
	}

	v, err := in.Lookup(QualifiedPath{"b"})
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if v.Value.Int() != 1 {
		t.Errorf("existing binding must be untouched, got %v", v.Value)
	}
}

func TestInterpret_DivisionByZeroCreatesNothing(t *testing.T) {
	in := NewInterpreter()

	_, err := in.Interpret(
		context.Background(),
		annotate(t, "x : int = 5 / 0\n"),
	)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}

	if _, err := in.Lookup(QualifiedPath{"x"}); err == nil {
		t.Error("x must not exist after a failed assignment")
	}
}

func TestInterpret_NestedScopeCreation(t *testing.T) {
	root, out := interpret(t,
		"outer -> inner -> v : int = 10\nouter -> inner -> v ?\n")

	v, err := root.Resolve(QualifiedPath{"outer", "inner", "v"})
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Value.Int() != 10 {
		t.Errorf("expected 10, got %v", v.Value)
	}

	want := "outer-> inner-> v : int = 10"
	if !strings.HasSuffix(strings.TrimSpace(out), want) {
		t.Errorf("expected inspect ending %q, got %q", want, out)
	}
}

func TestInterpret_BraceBlock(t *testing.T) {
	src := `person -> {
age : int = 25
name = "Ada"
}
`

	root, _ := interpret(t, src)

	age, err := root.Resolve(QualifiedPath{"person", "age"})
	if err != nil {
		t.Fatalf("resolve age: %v", err)
	}

	if age.Value.Int() != 25 {
		t.Errorf("expected 25, got %v", age.Value)
	}

	name, err := root.Resolve(QualifiedPath{"person", "name"})
	if err != nil {
		t.Fatalf("resolve name: %v", err)
	}

	if name.Value.Str() != "Ada" {
		t.Errorf("expected Ada, got %v", name.Value)
	}
}

func TestInterpret_TypedGroupMembers(t *testing.T) {
	src := `point -> : int {
x = 1
y = 2
}
`

	root, _ := interpret(t, src)

	for _, name := range []string{"x", "y"} {
		v, err := root.Resolve(QualifiedPath{"point", name})
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}

		if v.Type != TypeInt {
			t.Errorf("%s: expected declared type int, got %v", name, v.Type)
		}
	}
}

func TestInterpret_MutableReassignment(t *testing.T) {
	root, _ := interpret(t, "muta x : int = 1\nx = 2\n")

	v, err := root.Resolve(QualifiedPath{"x"})
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Value.Int() != 2 {
		t.Errorf("expected 2, got %v", v.Value)
	}

	if !v.Mutable {
		t.Error("mutable flag must survive reassignment")
	}
}

func TestInterpret_SameScopeFallback(t *testing.T) {
	// The right side names the destination's own group before that scope
	// exists; the suffix resolves against the root instead.
	root, _ := interpret(t, "age = 30\nperson -> age = person -> age\n")

	v, err := root.Resolve(QualifiedPath{"person", "age"})
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Value.Int() != 30 {
		t.Errorf("expected 30, got %v", v.Value)
	}
}

func TestInterpret_FullyQualifiedReference(t *testing.T) {
	root, _ := interpret(t,
		"person -> age : int = 25\ncopy = person -> age\n")

	v, err := root.Resolve(QualifiedPath{"copy"})
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Value.Int() != 25 {
		t.Errorf("expected 25, got %v", v.Value)
	}
}

func TestInterpret_ForwardReferenceFails(t *testing.T) {
	in := NewInterpreter()

	_, err := in.Interpret(
		context.Background(),
		annotate(t, "x = y\ny = 1\n"),
	)
	if !errors.Is(err, ErrVariableNotFoundInScope) {
		t.Fatalf("expected ErrVariableNotFoundInScope, got %v", err)
	}
}

func TestInterpret_TempResolvableButHidden(t *testing.T) {
	root, _ := interpret(t, "temp secret = 7\nvisible = secret\n")

	// Temporary bindings resolve during interpretation.
	v, err := root.Resolve(QualifiedPath{"visible"})
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if v.Value.Int() != 7 {
		t.Errorf("expected 7, got %v", v.Value)
	}

	// But never appear in rendered output.
	var buf bytes.Buffer
	if err := Dump(&buf, root); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	if strings.Contains(buf.String(), "secret") {
		t.Errorf("temp binding leaked into dump: %q", buf.String())
	}
}

func TestInterpret_InspectUnresolved(t *testing.T) {
	_, out := interpret(t, "missing ?\n")

	if !strings.HasSuffix(strings.TrimSpace(out), "missing : undefined") {
		t.Errorf("expected undefined inspect, got %q", out)
	}
}

func TestInterpret_InspectLiteral(t *testing.T) {
	_, out := interpret(t, "x = 5 ?\n")

	if !strings.HasSuffix(strings.TrimSpace(out), "5 : int = 5") {
		t.Errorf("expected literal inspect, got %q", out)
	}
}

func TestInterpret_Determinism(t *testing.T) {
	src := `x : int = 1
person -> {
age : int = 25
name = "Ada"
}
total = x + 2
`

	var first, second bytes.Buffer

	rootA, _ := interpret(t, src)
	if err := Dump(&first, rootA); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	rootB, _ := interpret(t, src)
	if err := Dump(&second, rootB); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("dumps differ:\n%q\n%q", first.String(), second.String())
	}
}

func TestInterpret_NumericPromotion(t *testing.T) {
	root, _ := interpret(t, "i = 2 + 3 * 4\nf = 2 + 3.0 * 4\n")

	i, err := root.Resolve(QualifiedPath{"i"})
	if err != nil {
		t.Fatalf("resolve i: %v", err)
	}

	if i.Type != TypeInt || i.Value.Int() != 14 {
		t.Errorf("expected int 14, got %v %v", i.Type, i.Value)
	}

	f, err := root.Resolve(QualifiedPath{"f"})
	if err != nil {
		t.Fatalf("resolve f: %v", err)
	}

	if f.Type != TypeFloat || f.Value.Float() != 14 {
		t.Errorf("expected float 14, got %v %v", f.Type, f.Value)
	}
}

func TestInterpret_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := NewInterpreter()

	_, err := in.Interpret(ctx, annotate(t, "x = 1\ny = 2\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPathSymmetry(t *testing.T) {
	tokens := annotate(t, "person -> age ?\n")

	// Locate the inspect marker; the same statement position must produce
	// identical paths walked forward from the start and backward from the
	// inspect.
	var inspectIdx int

	for i, tok := range tokens {
		if tok.Role == RoleInspect {
			inspectIdx = i

			break
		}
	}

	forward, _ := buildForwardPath(tokens, 0)
	backward := buildBackwardPath(tokens, inspectIdx-1)

	if len(forward) != len(backward) {
		t.Fatalf("path lengths differ: %v vs %v", forward, backward)
	}

	for i := range forward {
		if forward[i] != backward[i] {
			t.Errorf("segment %d differs: %q vs %q", i, forward[i], backward[i])
		}
	}
}
