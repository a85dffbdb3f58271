package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/quill-lang/quill/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the quill language itself.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The named group of the interpreted file becomes a flat configuration
// map. Flag names with hyphens (e.g., "log-level") should use underscores
// in the config file (e.g., "log_level"), since hyphens are not valid in
// quill identifiers. String values are quoted; booleans and numbers are
// not.
//
// Example quill config file:
//
//	config -> {
//	  log_level = "debug"
//	  log_format = "text"
//	  log_pretty = true
//	}
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=text
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(
	ctx context.Context,
	name string,
) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		tokens, err := lang.AnnotateReader(r)
		if err != nil {
			// Unreadable config - return empty config
			return config{}, nil
		}

		root, err := lang.NewInterpreter().Interpret(ctx, tokens)
		if err != nil {
			// Interpretation error - return empty config
			return config{}, nil
		}

		group, ok := root.Child(name)
		if !ok {
			// Group not found - return empty config
			return config{}, nil
		}

		return config(groupToMap(group)), nil
	}
}

// config implements [kong.Resolver] for quill language configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already interpreted successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but quill identifiers
	// use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// groupToMap flattens a scope's directly held bindings to a native map.
func groupToMap(s *lang.Scope) map[string]any {
	result := make(map[string]any, s.Len())

	for v := range s.Variables() {
		native := v.Value.Native()

		// Kong requires numbers as strings for parsing
		switch num := native.(type) {
		case int64:
			result[v.Name] = strconv.FormatInt(num, 10)
		case float64:
			result[v.Name] = strconv.FormatFloat(num, 'f', -1, 64)
		default:
			result[v.Name] = native
		}
	}

	return result
}
