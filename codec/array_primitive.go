package codec

import (
	"fmt"

	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/profiler"
	"github.com/arloliu/semcol/value"
	"github.com/arloliu/semcol/varint"
)

// ArrayPrimitiveCodec encodes a column of arrays-of-primitives by
// concatenating every row's elements into one flat column, profiling and
// encoding that flat column once with the registered codec for its
// inferred type, and recording per-row lengths to re-slice it on decode.
//
// Resolution of the inner codec happens at Encode/Decode time through a
// Resolver rather than a stored registry reference, so array codecs can be
// constructed before the full registry exists — see Resolver.
type ArrayPrimitiveCodec struct {
	resolver Resolver
}

var _ Codec = &ArrayPrimitiveCodec{}

// NewArrayPrimitiveCodec creates a new array-of-primitives codec. The
// resolver must be set via SetResolver before Encode or Decode is called.
func NewArrayPrimitiveCodec() *ArrayPrimitiveCodec { return &ArrayPrimitiveCodec{} }

// SetResolver installs the codec registry used to dispatch to the inner
// element codec. Called once, after the registry is fully populated.
func (c *ArrayPrimitiveCodec) SetResolver(r Resolver) { c.resolver = r }

func (c *ArrayPrimitiveCodec) Type() format.FieldType { return format.ARRAY_PRIMITIVE }

func (c *ArrayPrimitiveCodec) Encode(values []value.Value) ([]byte, error) {
	rowLens := make([]int, len(values))
	var flat []value.Value

	for i, v := range values {
		seq, ok := v.AsSeq()
		if !ok {
			return nil, fmt.Errorf("array primitive codec: value %d is not an array", i)
		}
		rowLens[i] = len(seq)
		flat = append(flat, seq...)
	}

	buf := varint.AppendUvarint(nil, uint32(len(values)))
	for _, l := range rowLens {
		buf = varint.AppendUvarint(buf, uint32(l))
	}

	if len(flat) == 0 {
		return buf, nil
	}

	result := profiler.Profile(flat)
	innerType := result.Type
	if innerType != format.NUMBER && allNumbers(flat) {
		innerType = format.NUMBER
	}

	codec, err := c.resolver.Get(innerType)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Encode(flat)
	if err != nil {
		return nil, fmt.Errorf("array primitive codec: inner encode: %w", err)
	}

	buf = append(buf, byte(innerType))
	buf = varint.AppendUvarint(buf, uint32(len(payload)))
	buf = append(buf, payload...)

	return buf, nil
}

func allNumbers(values []value.Value) bool {
	for _, v := range values {
		if !v.IsNumber() {
			return false
		}
	}

	return true
}

func (c *ArrayPrimitiveCodec) Decode(data []byte) ([]value.Value, error) {
	rowCount, n, err := varint.Uvarint(data)
	if err != nil {
		return nil, fmt.Errorf("array primitive codec: row count: %w", err)
	}
	offset := n

	rowLens := make([]int, rowCount)
	total := 0
	for i := uint32(0); i < rowCount; i++ {
		l, n, err := varint.Uvarint(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("array primitive codec: row length %d: %w", i, err)
		}
		offset += n
		rowLens[i] = int(l)
		total += int(l)
	}

	out := make([]value.Value, rowCount)

	if total == 0 {
		for i := range out {
			out[i] = value.Seq(nil)
		}
		return out, nil
	}

	if offset >= len(data) {
		return nil, errs.NewTruncated("array primitive codec inner type")
	}
	innerType := format.FieldType(data[offset])
	offset++

	payloadLen, n, err := varint.Uvarint(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("array primitive codec: payload length: %w", err)
	}
	offset += n

	if offset+int(payloadLen) > len(data) {
		return nil, errs.NewTruncated("array primitive codec payload")
	}
	payload := data[offset : offset+int(payloadLen)]

	codec, err := c.resolver.Get(innerType)
	if err != nil {
		return nil, err
	}

	flat, err := codec.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("array primitive codec: inner decode: %w", err)
	}

	if len(flat) != total {
		return nil, fmt.Errorf("array primitive codec: flat output length %d != sum of row lengths %d", len(flat), total)
	}

	pos := 0
	for i, l := range rowLens {
		if l == 0 {
			out[i] = value.Seq(nil)
			continue
		}
		out[i] = value.Seq(flat[pos : pos+l])
		pos += l
	}

	return out, nil
}
