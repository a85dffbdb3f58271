package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

const dumpProgram = "muta count : int = 0\n" +
	"person -> age = 25\n" +
	"person -> name = \"ada\"\n" +
	"temp scratch = 1\n"

func TestDumpText(t *testing.T) {
	text := &Text{Source: writeSource(t, dumpProgram)}

	output, err := captureStdout(t, func() error {
		return text.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("Text.Run() unexpected error = %v", err)
	}

	for _, expected := range []string{
		"count : int = 0 (muta)",
		"person-> age : int = 25",
		`person-> name : string = ada`,
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("Text.Run() output = %q, want to contain %q",
				output, expected)
		}
	}

	if strings.Contains(output, "scratch") {
		t.Errorf("Text.Run() output = %q, temporary binding must be hidden",
			output)
	}
}

func TestDumpJSON(t *testing.T) {
	jsonCmd := &JSON{Source: writeSource(t, dumpProgram)}

	output, err := captureStdout(t, func() error {
		return jsonCmd.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("JSON.Run() unexpected error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("invalid JSON output %q: %v", output, err)
	}

	person, ok := decoded["person"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested person object, got %v", decoded["person"])
	}

	if person["age"] != float64(25) {
		t.Errorf("person.age = %v, want 25", person["age"])
	}

	if _, ok := decoded["scratch"]; ok {
		t.Error("temporary binding must be hidden from JSON output")
	}
}

func TestDumpYAML(t *testing.T) {
	yamlCmd := &YAML{Source: writeSource(t, dumpProgram)}

	output, err := captureStdout(t, func() error {
		return yamlCmd.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("YAML.Run() unexpected error = %v", err)
	}

	for _, expected := range []string{"count: 0", "age: 25"} {
		if !strings.Contains(output, expected) {
			t.Errorf("YAML.Run() output = %q, want to contain %q",
				output, expected)
		}
	}
}

func TestDumpSuppressesInspect(t *testing.T) {
	text := &Text{Source: writeSource(t, "x = 5\nx ?\n")}

	output, err := captureStdout(t, func() error {
		return text.Run(context.Background())
	})
	if err != nil {
		t.Fatalf("Text.Run() unexpected error = %v", err)
	}

	if strings.Contains(output, "[2:") {
		t.Errorf("Text.Run() output = %q, inspect lines must be discarded",
			output)
	}

	if !strings.Contains(output, "x : int = 5") {
		t.Errorf("Text.Run() output = %q, want resolved tree", output)
	}
}

func TestDumpInvalidSource(t *testing.T) {
	text := &Text{Source: writeSource(t, "x = 1 = 2\n")}

	_, err := captureStdout(t, func() error {
		return text.Run(context.Background())
	})
	if err == nil {
		t.Error("Text.Run() expected error but got nil")
	}
}
