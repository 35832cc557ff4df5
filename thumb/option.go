package thumb

import (
	cimg "github.com/go-imsto/thumbcache/image"
)

// Option configures a Session
type Option func(*options)

type options struct {
	platform    Platform
	fallback    bool
	nativeDepth bool
	biggerOK    bool
	format      string
}

func newOptions(opts ...Option) options {
	o := options{format: cimg.DefaultFormat}
	for _, opt := range opts {
		opt(&o)
	}
	if o.platform == nil {
		o.platform = nativePlatform()
	}
	return o
}

func (o options) flags() Flags {
	f := FlagThumbnailOnly
	if o.fallback {
		f = FlagResizeToFit
	}
	if o.biggerOK {
		f |= FlagBiggerSizeOK
	}
	return f
}

// WithPlatform replaces the native platform
func WithPlatform(p Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// WithFallback lets the shell render the full content when no thumbnail exists
func WithFallback(on bool) Option {
	return func(o *options) {
		o.fallback = on
	}
}

// WithNativeDepth keeps a 16, 24 or 32 bpp source depth instead of forcing 32
func WithNativeDepth(on bool) Option {
	return func(o *options) {
		o.nativeDepth = on
	}
}

// WithBiggerSizeOK accepts a larger cached thumbnail and scales it down to the bounds
func WithBiggerSizeOK(on bool) Option {
	return func(o *options) {
		o.biggerOK = on
	}
}

// WithFormat sets the compressed format: jpeg, png or webp
func WithFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.format = cimg.Ext2Format(format)
		}
	}
}
