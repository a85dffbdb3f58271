// Package cli contains the command line interface for quill.
//
// # Commands
//
//   - run:  interpret a program, printing inspect lines in source order
//   - fmt:  reserialize a program in canonical form
//   - dump: interpret a program and render the resolved tree as text,
//     JSON, or YAML
//   - repl: start an interactive session over a persistent tree
//
// run is the default command, so these are equivalent:
//
//	quill program.quill
//	quill run program.quill
//
// Input comes from a positional source argument, one or more --source
// flags, or stdin when neither is given. Repeated --source flags are
// deduplicated by device and inode and concatenated in order, with stdin
// ("-") always last.
//
// # Configuration
//
// Flags may be seeded from a config file written in quill itself, with a
// "config" group holding flag values (hyphens in flag names become
// underscores):
//
//	config -> {
//	  log_level = "debug"
//	  log_pretty = true
//	}
//
// A JSON config file with the same base name plus ".json" is also read.
// Command-line flags override both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu,
//     goroutine, heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/quill/pprof)
//
// # Examples
//
//	# Interpret a program and print its resolved tree
//	quill run --tree program.quill
//
//	# Render the tree as YAML with debug logging
//	quill --log-level=debug dump yaml program.quill
//
//	# Interactive session seeded from a file
//	quill repl program.quill
package cli
