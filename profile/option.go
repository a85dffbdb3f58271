//go:build pprof

package profile

// Option adjusts the profiling options collected for one session.
type Option func(control) control

// apply folds opts over c in order.
func apply(c control, opts ...Option) control {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// newControl builds a control from the provided options.
func newControl(opts ...Option) control {
	var c control

	return apply(c, opts...)
}
