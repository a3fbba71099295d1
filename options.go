package bkgo

import "github.com/hupe1980/bkgo/codec"

type options struct {
	logger *Logger
	codec  codec.Codec
}

// Option configures Matcher behavior.
type Option func(*options)

// WithLogger sets the structured logger for operation tracing.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCodec configures the codec used for record export.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}
