//go:build !pprof

package profile

// Modes returns no mode names when built without the pprof build tag.
func Modes() []string { return nil }

// start is a no-op when built without the pprof build tag.
func start(_, _ string, _ bool) interface{ Stop() } { return ignore{} }
