package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func TestFmtValidSyntax(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "simple assignment",
			input:    "x = 5\n",
			contains: []string{"x = 5"},
		},
		{
			name:     "typed declaration",
			input:    "age:int=25\n",
			contains: []string{"age : int = 25"},
		},
		{
			name:     "implicit star made explicit",
			input:    "y = 2 ( 3 + 4 )\n",
			contains: []string{"y = 2 * ( 3 + 4 )"},
		},
		{
			name:     "quoted string literal",
			input:    "name = \"ada\"\n",
			contains: []string{`name = "ada"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtCmd := &Fmt{Source: writeSource(t, tt.input)}

			output, err := captureStdout(t, func() error {
				return fmtCmd.Run(context.Background())
			})
			if err != nil {
				t.Fatalf("Fmt.Run() unexpected error = %v", err)
			}

			for _, expected := range tt.contains {
				if !strings.Contains(output, expected) {
					t.Errorf("Fmt.Run() output = %q, want to contain %q",
						output, expected)
				}
			}
		})
	}
}

func TestFmtInvalidSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"multiple assignments", "x = 1 = 2\n"},
		{"double identifier", "a b = 1\n"},
		{"empty expression", "x =\n"},
		{"unterminated string", "x = \"abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtCmd := &Fmt{Source: writeSource(t, tt.input)}

			_, err := captureStdout(t, func() error {
				return fmtCmd.Run(context.Background())
			})
			if err == nil {
				t.Error("Fmt.Run() expected error but got nil")
			}
		})
	}
}

// TestFmtStdin tests reading from stdin.
func TestFmtStdin(t *testing.T) {
	// Save and restore stdin
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r

	go func() {
		defer w.Close()
		io.WriteString(w, "x = 5\n")
	}()

	fmtCmd := &Fmt{Source: "-"}

	output, err := captureStdout(t, func() error {
		return fmtCmd.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("Fmt.Run() unexpected error = %v", err)
	}

	if !strings.Contains(output, "x = 5") {
		t.Errorf("Fmt.Run() output = %q, want to contain %q", output, "x = 5")
	}
}
