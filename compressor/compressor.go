// Package compressor implements the top-level orchestrator: Compress,
// CompressColumnarPost, and Decompress. It ties together the profiler,
// column builder, codec registry, nullable wrapper, and header packages
// into the two container wire formats this package exposes: the standard
// container and the columnar post-compressed variant.
package compressor

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/semcol/codec"
	"github.com/arloliu/semcol/column"
	"github.com/arloliu/semcol/compress"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/header"
	"github.com/arloliu/semcol/internal/options"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/profiler"
	"github.com/arloliu/semcol/registry"
	"github.com/arloliu/semcol/value"
)

// parallelColumnThreshold is the column count above which fork/join
// parallelism across columns starts to pay for its goroutine overhead.
const parallelColumnThreshold = 4

// allFieldTypes enumerates every type the profiler can emit, used at
// construction time to validate a supplied registry covers all of them.
var allFieldTypes = []format.FieldType{
	format.STRING, format.NUMBER, format.BOOLEAN, format.TIMESTAMP,
	format.UUID, format.ENUM, format.ARRAY, format.ARRAY_PRIMITIVE,
}

// Compressor is the configured orchestrator. The zero value is not usable;
// construct with New.
type Compressor struct {
	registry  *registry.Registry
	logger    *zap.Logger
	byteCodec compress.Codec
	version   uint8
	parallel  bool
}

// New builds a Compressor from opts, applying defaults for anything not
// overridden: the default registry, a no-op logger, Zstd as the
// post-compression byte codec, header version 1, and parallel column
// processing enabled. The configured logger is wired into the registry
// (default or caller-supplied) so codec-registration warnings share the
// same structured log stream as the rest of the compressor.
//
// New validates that every FieldType the profiler can emit resolves in the
// configured registry, failing fast with a NoCodec error at construction
// rather than mid-batch.
func New(opts ...Option) (*Compressor, error) {
	c := &Compressor{
		registry:  registry.Default(),
		logger:    zap.NewNop(),
		byteCodec: compress.NewZstdCompressor(),
		version:   1,
		parallel:  true,
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	c.registry.SetLogger(c.logger)

	for _, ft := range allFieldTypes {
		if !c.registry.Supports(ft) {
			return nil, errs.NewNoCodec(ft)
		}
	}

	return c, nil
}

var (
	defaultCompressor     *Compressor
	defaultCompressorOnce sync.Once
	defaultCompressorErr  error
)

func defaultInstance() (*Compressor, error) {
	defaultCompressorOnce.Do(func() {
		defaultCompressor, defaultCompressorErr = New()
	})

	return defaultCompressor, defaultCompressorErr
}

// Compress encodes records into the standard container format. It is a
// convenience wrapper around a package-default Compressor's Compress
// method.
func Compress(records []map[string]any) ([]byte, error) {
	c, err := defaultInstance()
	if err != nil {
		return nil, err
	}

	return c.Compress(records)
}

// CompressColumnarPost encodes records into the columnar post-compressed
// container format.
func CompressColumnarPost(records []map[string]any) ([]byte, error) {
	c, err := defaultInstance()
	if err != nil {
		return nil, err
	}

	return c.CompressColumnarPost(records)
}

// Decompress parses a container buffer produced by either Compress or
// CompressColumnarPost, detecting the variant from its magic bytes.
func Decompress(data []byte) ([]map[string]any, error) {
	c, err := defaultInstance()
	if err != nil {
		return nil, err
	}

	return c.Decompress(data)
}

// preparedColumn holds one column's prepare-phase output: its resolved
// type and its standard-format encoded buffer (before any post-compression).
type preparedColumn struct {
	name string
	typ  format.FieldType
	buf  []byte
}

// prepare runs the shared prepare phase: union and backfill of keys,
// per-column profiling, nullable-wrapped encode, and the mandatory
// round-trip self-check. It returns one preparedColumn per key, in sorted
// key order.
func (c *Compressor) prepare(records []map[string]any) ([]preparedColumn, error) {
	if len(records) == 0 {
		return nil, errs.ErrEmptyBatch
	}

	valueRecords := make([]map[string]value.Value, len(records))
	for i, r := range records {
		m := make(map[string]value.Value, len(r))
		for k, v := range r {
			m[k] = value.FromNative(v)
		}
		valueRecords[i] = m
	}

	keys, columns := column.Pivot(valueRecords)

	prepared := make([]preparedColumn, len(keys))

	encodeOne := func(i int) error {
		key := keys[i]
		col := columns[key]

		present := make([]value.Value, 0, len(col))
		for _, v := range col {
			if !v.IsMissing() {
				present = append(present, v)
			}
		}

		result := profiler.Profile(present)

		inner, err := c.registry.Get(result.Type)
		if err != nil {
			return fmt.Errorf("compressor: field %q: %w", key, err)
		}

		nullable := codec.NewNullable(inner)

		buf, err := nullable.Encode(col)
		if err != nil {
			return fmt.Errorf("compressor: field %q: encode: %w", key, err)
		}

		decoded, err := nullable.Decode(buf)
		if err != nil {
			return fmt.Errorf("compressor: field %q: self-check decode: %w", key, err)
		}

		if !columnsEqual(col, decoded) {
			return errs.NewRoundTripFailed(key, result.Type)
		}

		c.logger.Debug("column prepared",
			zap.String("field", key),
			zap.String("type", result.Type.String()),
			zap.Int("rows", len(col)),
			zap.Bool("has_null", result.HasNull),
			zap.Int("bytes", len(buf)),
		)

		prepared[i] = preparedColumn{name: key, typ: result.Type, buf: buf}

		return nil
	}

	if c.parallel && len(keys) > parallelColumnThreshold {
		var g errgroup.Group
		for i := range keys {
			i := i
			g.Go(func() error { return encodeOne(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range keys {
			if err := encodeOne(i); err != nil {
				return nil, err
			}
		}
	}

	return prepared, nil
}

func columnsEqual(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !value.Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// Compress encodes records into the standard container format: header
// followed by the concatenation of per-column encoded buffers.
func (c *Compressor) Compress(records []map[string]any) ([]byte, error) {
	prepared, err := c.prepare(records)
	if err != nil {
		return nil, fmt.Errorf("compressor: compress: %w", err)
	}

	h := header.Header{Magic: header.MagicStandard, Version: c.version}
	bb := pool.GetBatchBuffer()
	defer pool.PutBatchBuffer(bb)

	for _, p := range prepared {
		h.Fields = append(h.Fields, header.FieldSchemaEntry{
			Name:       p.name,
			Type:       p.typ,
			ByteLength: uint32(len(p.buf)),
		})
		bb.MustWrite(p.buf)
	}

	headerBytes, err := header.Encode(h)
	if err != nil {
		return nil, fmt.Errorf("compressor: compress: %w", err)
	}

	return append(headerBytes, bb.Bytes()...), nil
}

// CompressColumnarPost encodes records into the columnar post-compressed
// container format: each column's standard-encoded buffer is additionally
// passed through the configured opaque byte codec before being written.
func (c *Compressor) CompressColumnarPost(records []map[string]any) ([]byte, error) {
	prepared, err := c.prepare(records)
	if err != nil {
		return nil, fmt.Errorf("compressor: compress columnar post: %w", err)
	}

	compressed := make([][]byte, len(prepared))

	compressOne := func(i int) error {
		out, err := c.byteCodec.Compress(prepared[i].buf)
		if err != nil {
			return fmt.Errorf("compressor: field %q: byte codec: %w", prepared[i].name, err)
		}
		compressed[i] = out

		return nil
	}

	if c.parallel && len(prepared) > parallelColumnThreshold {
		var g errgroup.Group
		for i := range prepared {
			i := i
			g.Go(func() error { return compressOne(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range prepared {
			if err := compressOne(i); err != nil {
				return nil, err
			}
		}
	}

	h := header.Header{Magic: header.MagicColumnarCompressed, Version: c.version}
	bb := pool.GetBatchBuffer()
	defer pool.PutBatchBuffer(bb)

	for i, p := range prepared {
		h.Fields = append(h.Fields, header.FieldSchemaEntry{
			Name:       p.name,
			Type:       p.typ,
			ByteLength: uint32(len(compressed[i])),
		})
		bb.MustWrite(compressed[i])
	}

	headerBytes, err := header.Encode(h)
	if err != nil {
		return nil, fmt.Errorf("compressor: compress columnar post: %w", err)
	}

	c.logger.Info("compress columnar post complete",
		zap.Int("fields", len(prepared)),
		zap.Int("bytes", len(headerBytes)+bb.Len()),
	)

	return append(headerBytes, bb.Bytes()...), nil
}

// Decompress parses a container buffer produced by Compress or
// CompressColumnarPost, detecting the variant from its magic bytes, and
// reconstructs the original records in their original order.
func (c *Compressor) Decompress(data []byte) ([]map[string]any, error) {
	h, offset, err := header.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("compressor: decompress: %w", err)
	}

	if len(h.Fields) == 0 {
		return []map[string]any{}, nil
	}

	type decodedColumn struct {
		name string
		col  []value.Value
	}
	decodedCols := make([]decodedColumn, len(h.Fields))

	decodeOne := func(i int) error {
		f := h.Fields[i]

		fieldOffset := offset
		for j := 0; j < i; j++ {
			fieldOffset += int(h.Fields[j].ByteLength)
		}

		if fieldOffset+int(f.ByteLength) > len(data) {
			return errs.NewTruncated(fmt.Sprintf("column %q payload", f.Name))
		}
		buf := data[fieldOffset : fieldOffset+int(f.ByteLength)]

		if h.IsColumnarCompressed() {
			decompressed, err := c.byteCodec.Decompress(buf)
			if err != nil {
				return fmt.Errorf("compressor: field %q: byte codec: %w", f.Name, err)
			}
			buf = decompressed
		}

		inner, err := c.registry.Get(f.Type)
		if err != nil {
			return fmt.Errorf("compressor: field %q: %w", f.Name, err)
		}

		nullable := codec.NewNullable(inner)
		col, err := nullable.Decode(buf)
		if err != nil {
			return fmt.Errorf("compressor: field %q: decode: %w", f.Name, err)
		}

		decodedCols[i] = decodedColumn{name: f.Name, col: col}

		return nil
	}

	if c.parallel && len(h.Fields) > parallelColumnThreshold {
		var g errgroup.Group
		for i := range h.Fields {
			i := i
			g.Go(func() error { return decodeOne(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range h.Fields {
			if err := decodeOne(i); err != nil {
				return nil, err
			}
		}
	}

	keys := make([]string, len(decodedCols))
	columns := make(map[string][]value.Value, len(decodedCols))
	rowCount := 0
	for i, dc := range decodedCols {
		keys[i] = dc.name
		columns[dc.name] = dc.col
		rowCount = len(dc.col)
	}

	records := column.Unpivot(keys, columns, rowCount)

	out := make([]map[string]any, len(records))
	for i, r := range records {
		m := make(map[string]any, len(r))
		for k, v := range r {
			m[k] = value.ToNative(v)
		}
		out[i] = m
	}

	c.logger.Info("decompress complete",
		zap.Int("fields", len(h.Fields)),
		zap.Int("rows", rowCount),
	)

	return out, nil
}
