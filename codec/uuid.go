package codec

import (
	"fmt"

	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/value"
	"github.com/google/uuid"
)

// UUIDCodec encodes canonical hyphenated UUID strings as fixed 16-byte
// values with no self-length: value i occupies bytes [16*i, 16*i+16).
//
// This is the tightest possible representation for RFC-4122 UUIDs — the
// canonical 36-character string form carries 4 redundant hyphen bytes and
// hex-doubles every byte, so this codec stores each value in 16 bytes
// instead of 36, a 2.25:1 improvement over storing the raw string.
type UUIDCodec struct{}

var _ Codec = UUIDCodec{}

// NewUUIDCodec creates a new UUID codec. The codec is stateless and safe
// for concurrent use.
func NewUUIDCodec() UUIDCodec { return UUIDCodec{} }

func (UUIDCodec) Type() format.FieldType { return format.UUID }

func (UUIDCodec) Encode(values []value.Value) ([]byte, error) {
	bb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(bb)

	for i, v := range values {
		s, ok := v.AsString()
		if !ok {
			return nil, fmt.Errorf("uuid codec: value %d is not a string", i)
		}

		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("uuid codec: value %d: %w", i, err)
		}

		bb.MustWrite(id[:])
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

func (UUIDCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data)%16 != 0 {
		return nil, errs.NewTruncated("uuid codec payload")
	}

	count := len(data) / 16
	out := make([]value.Value, count)

	for i := 0; i < count; i++ {
		var id uuid.UUID
		copy(id[:], data[i*16:i*16+16])
		out[i] = value.String(id.String())
	}

	return out, nil
}
