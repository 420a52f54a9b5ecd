package spe3

// Option configures decoding.
type Option func(*options)

type options struct {
	lazyFrames bool
}

func defaultOptions() *options {
	return &options{
		lazyFrames: false,
	}
}

// WithLazyFrames defers reading frame payloads until each frame is first
// accessed, keeping memory bounded for large multi-frame files. The byte
// source must stay open for as long as frames are read; with Open that
// means the file is held until Close.
func WithLazyFrames() Option {
	return func(o *options) {
		o.lazyFrames = true
	}
}
