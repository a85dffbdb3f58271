// Package profile provides optional runtime profiling for the quill
// command-line driver.
//
// The package wraps [github.com/pkg/profile] behind conditional
// compilation: profiling support is only compiled in when the "pprof"
// build tag is set. Without the tag every operation is a no-op with zero
// runtime overhead, so the CLI can wire profiling flags unconditionally.
//
// A profiler is configured through a [Config] value built with the
// functional options [WithMode], [WithPath], and [WithQuiet], then started
// with [Config.Start]:
//
//	cfg := profile.WithMode("cpu")(profile.Config(func() (string, string, bool) {
//	    return "", "", false
//	}))
//	defer cfg.Start().Stop()
//
// Use [Modes] to retrieve the supported mode names programmatically; they
// feed the CLI's flag enumeration. Profile files are written to the
// configured directory with names matching the mode (cpu.pprof,
// mem.pprof, ...) and analyzed with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
