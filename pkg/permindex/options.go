package permindex

type Option func(*options)

// WithDeduplication drops repeated entities within the allowed list of a
// single role. Without it every occurrence is indexed.
func WithDeduplication() Option {
	return func(o *options) {
		o.deduplicate = true
	}
}

type options struct {
	deduplicate bool
}

func defaultOptions() *options {
	return &options{
		deduplicate: false,
	}
}
