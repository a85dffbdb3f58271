// Package cmd implements the quill subcommands: run (interpret a
// program), fmt (reserialize annotated statements), dump (render the
// resolved scope tree), and repl (interactive session).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the default configuration file.
	ConfigIdentifier = "config"
)
