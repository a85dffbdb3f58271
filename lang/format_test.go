package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDump_QualifiedLines(t *testing.T) {
	src := `x : int = 5
muta count = 0
person -> {
age : int = 25
name = "Ada"
}
`

	root, _ := interpret(t, src)

	var buf bytes.Buffer
	if err := Dump(&buf, root); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	want := []string{
		"x : int = 5",
		"count : int = 0 (muta)",
		"person-> age : int = 25",
		"person-> name : string = Ada",
	}

	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(got), buf.String())
	}

	for i, line := range want {
		if got[i] != line {
			t.Errorf("line %d: expected %q, got %q", i, line, got[i])
		}
	}
}

func TestFormatStatements_Roundtrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "typed assignment",
			input: "x : int = 5\n",
			want:  "x : int = 5",
		},
		{
			name:  "qualified path",
			input: "person -> age : int = 25\n",
			want:  "person -> age : int = 25",
		},
		{
			name:  "string literal requoted",
			input: "name = \"Ada\"\n",
			want:  `name = "Ada"`,
		},
		{
			name:  "expression with implicit star",
			input: "a : int = 2 (3 + 4)\n",
			want:  "a : int = 2 * ( 3 + 4 )",
		},
		{
			name:  "modifier preserved",
			input: "muta x = 1\n",
			want:  "muta x = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := FormatStatements(&buf, annotate(t, tt.input))
			if err != nil {
				t.Fatalf("format error: %v", err)
			}

			got := strings.TrimSpace(buf.String())
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatStatements_ReparsesToSameTree(t *testing.T) {
	src := `x : int = 5
person -> age : int = 25
total = x + 1
`

	var buf bytes.Buffer

	err := FormatStatements(&buf, annotate(t, src))
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	rootA, _ := interpret(t, src)
	rootB, _ := interpret(t, buf.String()+"\n")

	var dumpA, dumpB bytes.Buffer

	if err := Dump(&dumpA, rootA); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	if err := Dump(&dumpB, rootB); err != nil {
		t.Fatalf("dump error: %v", err)
	}

	if dumpA.String() != dumpB.String() {
		t.Errorf("reformatted source resolves differently:\n%q\n%q",
			dumpA.String(), dumpB.String())
	}
}

func TestRenderInspect_Nothing(t *testing.T) {
	var sink bytes.Buffer

	in := NewInterpreter(WithSink(&sink))

	_, err := in.Interpret(context.Background(), annotate(t, "?\n"))
	if err != nil {
		t.Fatalf("interpret error: %v", err)
	}

	if !strings.HasSuffix(strings.TrimSpace(sink.String()), "(nothing)") {
		t.Errorf("expected (nothing), got %q", sink.String())
	}
}
