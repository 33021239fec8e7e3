package compressor

import (
	"go.uber.org/zap"

	"github.com/arloliu/semcol/compress"
	"github.com/arloliu/semcol/internal/options"
	"github.com/arloliu/semcol/registry"
)

// Option configures a Compressor built with New.
type Option = options.Option[*Compressor]

// WithRegistry overrides the default codec registry.
func WithRegistry(r *registry.Registry) Option {
	return options.NoError[*Compressor](func(c *Compressor) {
		c.registry = r
	})
}

// WithLogger installs a structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError[*Compressor](func(c *Compressor) {
		c.logger = logger
	})
}

// WithByteCodec overrides the opaque post-compressor CompressColumnarPost
// applies to each encoded column buffer. The default is Zstd.
func WithByteCodec(codec compress.Codec) Option {
	return options.NoError[*Compressor](func(c *Compressor) {
		c.byteCodec = codec
	})
}

// WithVersion overrides the header's version byte. The default is 1.
func WithVersion(v uint8) Option {
	return options.NoError[*Compressor](func(c *Compressor) {
		c.version = v
	})
}

// WithParallel toggles fork/join parallelism across columns during
// encode/decode. The default is enabled.
func WithParallel(enabled bool) Option {
	return options.NoError[*Compressor](func(c *Compressor) {
		c.parallel = enabled
	})
}
