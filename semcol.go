// Package semcol provides a compact binary container format for
// homogeneous batches of JSON-shaped records.
//
// semcol profiles each field across a batch and picks a semantic codec for
// it — dictionary coding for low-cardinality strings, delta/zigzag varints
// for integers, fixed-point packing for decimals, bit-packed validity
// bitmaps for nulls — rather than relying on a single general-purpose byte
// compressor. An optional columnar-post-compressed variant additionally
// runs each column's encoded buffer through Zstd, S2, or LZ4.
//
// # Basic Usage
//
// Compressing a batch of records:
//
//	records := []map[string]any{
//	    {"id": "4f9e2b3a-6c1d-4e2f-9a8b-0c1d2e3f4a5b", "status": "active", "score": 93.5},
//	    {"id": "7a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9", "status": "active", "score": 87.25},
//	}
//
//	data, err := semcol.Compress(records)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := semcol.Decompress(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around a
// package-default compressor.Compressor. For registry customization,
// structured logging, or a non-default post-compression codec, construct a
// compressor.Compressor directly via compressor.New.
package semcol

import (
	"go.uber.org/zap"

	"github.com/arloliu/semcol/compress"
	"github.com/arloliu/semcol/compressor"
	"github.com/arloliu/semcol/registry"
)

// Compressor configures and runs the compression pipeline. It is a type
// alias so callers can write semcol.Compressor in place of
// compressor.Compressor without an extra import.
type Compressor = compressor.Compressor

// Option configures a Compressor built with New.
type Option = compressor.Option

// New builds a Compressor from opts. See compressor.New for defaults.
func New(opts ...Option) (*Compressor, error) {
	return compressor.New(opts...)
}

// WithRegistry overrides the default codec registry.
func WithRegistry(r *registry.Registry) Option {
	return compressor.WithRegistry(r)
}

// WithLogger installs a structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return compressor.WithLogger(logger)
}

// WithByteCodec overrides the opaque post-compressor CompressColumnarPost
// applies to each encoded column buffer. The default is Zstd.
func WithByteCodec(codec compress.Codec) Option {
	return compressor.WithByteCodec(codec)
}

// WithVersion overrides the header's version byte. The default is 1.
func WithVersion(v uint8) Option {
	return compressor.WithVersion(v)
}

// WithParallel toggles fork/join parallelism across columns during
// encode/decode. The default is enabled.
func WithParallel(enabled bool) Option {
	return compressor.WithParallel(enabled)
}

// Compress encodes records into the standard container format using a
// package-default Compressor.
//
// Returns an error if records is empty or if any field's values cannot be
// represented by its resolved codec.
func Compress(records []map[string]any) ([]byte, error) {
	return compressor.Compress(records)
}

// CompressColumnarPost encodes records into the columnar post-compressed
// container format using a package-default Compressor.
func CompressColumnarPost(records []map[string]any) ([]byte, error) {
	return compressor.CompressColumnarPost(records)
}

// Decompress parses a container buffer produced by Compress or
// CompressColumnarPost, detecting the variant from its magic bytes.
func Decompress(data []byte) ([]map[string]any, error) {
	return compressor.Decompress(data)
}
