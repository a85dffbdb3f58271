package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_ReturnsCorrectConfig(t *testing.T) {
	config := `
config -> {
	log_level = "debug"
	log_format = "text"
}
other -> {
	foo = "bar"
}
`

	loader := resolve(context.Background(), "config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Verify values by creating mock flags and using Resolve
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log_format"}}

	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val2 != "text" {
		t.Errorf("expected log_format=text, got %v", val2)
	}

	// Verify 'other' group values are not included
	mockFlag3 := &kong.Flag{Value: &kong.Value{Name: "foo"}}

	val3, err := resolver.Resolve(nil, nil, mockFlag3)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val3 != nil {
		t.Error("config should not contain 'foo' from 'other' group")
	}
}

func TestResolve_MissingGroup(t *testing.T) {
	config := "existing -> {\n\tfoo = \"bar\"\n}\n"

	loader := resolve(context.Background(), "missing")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "foo"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != nil {
		t.Error("expected nil value for missing group")
	}
}

func TestResolve_UnderscoreHyphenMapping(t *testing.T) {
	config := "config -> {\n\tlog_level = \"debug\"\n}\n"

	loader := resolve(context.Background(), "config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Test underscore version (as stored in config)
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	// Test hyphen version (should also work via underscore mapping)
	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log-level"}}

	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val2 != "debug" {
		t.Errorf("expected log-level=debug, got %v", val2)
	}
}

func TestResolve_NumbersAsStrings(t *testing.T) {
	config := "config -> {\n\twidth = 120\n\tratio = 1.5\n}\n"

	loader := resolve(context.Background(), "config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "width"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != "120" {
		t.Errorf("expected width=%q, got %v", "120", val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "ratio"}}

	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val2 != "1.5" {
		t.Errorf("expected ratio=%q, got %v", "1.5", val2)
	}
}

func TestResolve_InvalidConfigIsEmpty(t *testing.T) {
	// An unparseable config file must not break flag parsing.
	config := "x = 1 = 2\n"

	loader := resolve(context.Background(), "config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != nil {
		t.Error("expected nil value for invalid config")
	}
}
