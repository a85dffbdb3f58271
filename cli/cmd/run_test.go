package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

// writeSource creates a temp file holding the given program text.
func writeSource(t *testing.T, input string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "quill-test-*.quill")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tmpfile.WriteString(input); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	return tmpfile.Name()
}

// captureStdout runs fn with stdout redirected to a pipe and returns what
// was written.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}

	return buf.String(), runErr
}

func TestRunInspectOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:  "simple inspect",
			input: "x = 5\nx ?\n",
			contains: []string{
				"x : int = 5",
			},
		},
		{
			name:  "qualified inspect",
			input: "person -> age = 25\nperson -> age ?\n",
			contains: []string{
				"person-> age : int = 25",
			},
		},
		{
			name:  "undefined inspect",
			input: "missing ?\n",
			contains: []string{
				"missing : undefined",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{Source: writeSource(t, tt.input)}

			output, err := captureStdout(t, func() error {
				return run.Run(context.Background())
			})
			if err != nil {
				t.Fatalf("Run.Run() unexpected error = %v", err)
			}

			for _, expected := range tt.contains {
				if !strings.Contains(output, expected) {
					t.Errorf("Run.Run() output = %q, want to contain %q",
						output, expected)
				}
			}
		})
	}
}

func TestRunTreeOutput(t *testing.T) {
	input := "muta count : int = 0\nperson -> age = 25\n"

	run := &Run{Source: writeSource(t, input), Tree: true}

	output, err := captureStdout(t, func() error {
		return run.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("Run.Run() unexpected error = %v", err)
	}

	for _, expected := range []string{
		"count : int = 0 (muta)",
		"person-> age : int = 25",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("Run.Run() output = %q, want to contain %q",
				output, expected)
		}
	}
}

func TestRunInvalidSource(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"multiple assignments", "x = 1 = 2\n"},
		{"double identifier", "a b = 1\n"},
		{"immutable reassignment", "x = 1\nx = 2\n"},
		{"division by zero", "x = 1 / 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{Source: writeSource(t, tt.input)}

			_, err := captureStdout(t, func() error {
				return run.Run(context.Background())
			})
			if err == nil {
				t.Error("Run.Run() expected error but got nil")
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	run := &Run{Source: "/nonexistent/file.quill"}

	err := run.Run(context.Background())
	if err == nil {
		t.Error("Run.Run() expected error for missing file")
	}
}
