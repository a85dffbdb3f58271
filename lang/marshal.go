package lang

import (
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/quill-lang/quill/pkg"
)

// ToMap converts a resolved scope tree to a native Go map structure.
// Nested scopes become nested maps; temporary bindings are excluded the
// same way [Dump] excludes them.
func ToMap(s *Scope) map[string]any {
	result := make(map[string]any, len(s.vars)+len(s.children))

	for v := range s.Variables() {
		if v.Temp {
			continue
		}

		result[v.Name] = v.Value.Native()
	}

	for name, child := range s.Children() {
		result[name] = ToMap(child)
	}

	return result
}

// MarshalJSON serializes the resolved scope tree as JSON.
func MarshalJSON(s *Scope) ([]byte, error) {
	data, err := json.MarshalIndent(ToMap(s), "", "  ")
	if err != nil {
		return nil, pkg.ErrJSONMarshal.Wrap(err)
	}

	return data, nil
}

// MarshalYAML serializes the resolved scope tree as YAML.
func MarshalYAML(s *Scope) ([]byte, error) {
	data, err := yaml.Marshal(ToMap(s))
	if err != nil {
		return nil, pkg.ErrYAMLMarshal.Wrap(err)
	}

	return data, nil
}
