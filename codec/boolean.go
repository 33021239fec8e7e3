package codec

import (
	"fmt"

	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/value"
	"github.com/arloliu/semcol/varint"
)

// BooleanCodec bit-packs a column of booleans: Varint(count) followed by
// ceil(count/8) bytes, bit i (LSB-first within its byte) representing
// values[i]. Trailing bits beyond count are zero and ignored on decode —
// the same length-prefixed bit-packing shape as other_examples' stoolap
// BitPackEncoder, generalized from a fixed 4-byte length prefix to a
// varint so it composes with the rest of this format's encoding.
type BooleanCodec struct{}

var _ Codec = BooleanCodec{}

// NewBooleanCodec creates a new boolean codec.
func NewBooleanCodec() BooleanCodec { return BooleanCodec{} }

func (BooleanCodec) Type() format.FieldType { return format.BOOLEAN }

func (BooleanCodec) Encode(values []value.Value) ([]byte, error) {
	bb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(bb)

	bb.B = varint.AppendUvarint(bb.B, uint32(len(values)))

	packedLen := (len(values) + 7) / 8
	prefixLen := bb.Len()
	bb.ExtendOrGrow(packedLen)
	packed := bb.B[prefixLen:]
	for i := range packed {
		packed[i] = 0
	}

	for i, v := range values {
		b, ok := v.AsBool()
		if !ok {
			return nil, fmt.Errorf("boolean codec: value %d is not a bool", i)
		}
		if b {
			packed[i/8] |= 1 << (i % 8)
		}
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

func (BooleanCodec) Decode(data []byte) ([]value.Value, error) {
	count, n, err := varint.Uvarint(data)
	if err != nil {
		return nil, fmt.Errorf("boolean codec: %w", err)
	}

	packedLen := (int(count) + 7) / 8
	if len(data) < n+packedLen {
		return nil, errs.NewTruncated("boolean codec body")
	}
	packed := data[n : n+packedLen]

	out := make([]value.Value, count)
	for i := range out {
		bit := packed[i/8]&(1<<(i%8)) != 0
		out[i] = value.Bool(bit)
	}

	return out, nil
}
