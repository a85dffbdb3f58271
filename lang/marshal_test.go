package lang

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestToMap_NestedScopes(t *testing.T) {
	src := `x : int = 5
pi = 3.5
ok = true
person -> {
name = "Ada"
age : int = 25
}
temp hidden = 1
`

	root, _ := interpret(t, src)

	m := ToMap(root)

	if m["x"] != int64(5) {
		t.Errorf("expected x=5, got %v", m["x"])
	}

	if m["pi"] != 3.5 {
		t.Errorf("expected pi=3.5, got %v", m["pi"])
	}

	if m["ok"] != true {
		t.Errorf("expected ok=true, got %v", m["ok"])
	}

	person, ok := m["person"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map for person, got %T", m["person"])
	}

	if person["name"] != "Ada" || person["age"] != int64(25) {
		t.Errorf("unexpected person map: %v", person)
	}

	if _, ok := m["hidden"]; ok {
		t.Error("temp binding leaked into map")
	}
}

func TestMarshalJSON(t *testing.T) {
	root, _ := interpret(t, "person -> age : int = 25\n")

	data, err := MarshalJSON(root)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	person, ok := decoded["person"].(map[string]any)
	if !ok {
		t.Fatalf("expected person object, got %T", decoded["person"])
	}

	// encoding/json decodes numbers as float64.
	if person["age"] != float64(25) {
		t.Errorf("expected age 25, got %v", person["age"])
	}
}

func TestMarshalYAML(t *testing.T) {
	root, _ := interpret(t, "name = \"Ada\"\nperson -> age : int = 25\n")

	data, err := MarshalYAML(root)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	out := string(data)

	if !strings.Contains(out, "name: Ada") {
		t.Errorf("expected name entry, got %q", out)
	}

	if !strings.Contains(out, "age: 25") {
		t.Errorf("expected age entry, got %q", out)
	}
}
