package log

// Option applies a configuration setting to a Logger's config.
type Option func(config) config

// apply applies the given options to a config in order.
func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}
