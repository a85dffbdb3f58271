// Package log provides a concurrency-safe structured logging facade over
// [log/slog] for the quill interpreter and its command-line driver.
//
// A [Logger] is a value type: the zero value is a valid no-op logger, so
// library code can log unconditionally without nil checks. Configuration is
// applied through functional options ([WithLevel], [WithFormat],
// [WithTimeLayout], [WithCaller], [WithPretty], [WithOutput]) either at
// construction with [Make] or by deriving a new logger with [Logger.Wrap].
//
// In addition to the standard slog levels, the package defines a Trace level
// below Debug used by the interpreter core for per-token diagnostics.
//
// A package-level default logger writing to stdout is available through the
// top-level functions ([Info], [Error], ...) and reconfigured with [Config].
package log
