package codec

import (
	"fmt"

	"github.com/arloliu/semcol/bitmap"
	"github.com/arloliu/semcol/endian"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/value"
)

var littleEndian = endian.GetLittleEndianEngine()

// Nullable wraps a Codec to add MISSING-awareness. It is the sole codec
// the compressor invokes directly for a column: the inner codec never
// sees a value.Missing entry.
//
// Wire layout: u32 LE rowCount | validity bitmap (ceil(rowCount/8) bytes,
// LSB-first, bit set ⇔ non-MISSING) | inner.Encode(nonMissingValues).
type Nullable struct {
	inner Codec
}

// NewNullable wraps inner with MISSING handling.
func NewNullable(inner Codec) Nullable { return Nullable{inner: inner} }

func isMissing(v value.Value) bool { return v.IsMissing() }

// Encode produces the full nullable-wrapped column buffer for values,
// which may freely interleave value.Missing with typed/null entries.
func (n Nullable) Encode(values []value.Value) ([]byte, error) {
	bm, nonMissing := bitmap.Build(values, isMissing)

	payload, err := n.inner.Encode(nonMissing)
	if err != nil {
		return nil, fmt.Errorf("nullable: inner codec %s: %w", n.inner.Type(), err)
	}

	bb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(bb)

	bb.B = littleEndian.AppendUint32(bb.B, uint32(len(values)))
	bb.MustWrite(bm)
	bb.MustWrite(payload)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// Decode reverses Encode, re-interleaving value.Missing at the positions
// the validity bitmap marks as missing.
func (n Nullable) Decode(data []byte) ([]value.Value, error) {
	if len(data) < 4 {
		return nil, errs.NewTruncated("nullable row count")
	}

	rowCount := int(littleEndian.Uint32(data[:4]))
	bmSize := bitmap.Size(rowCount)

	if len(data) < 4+bmSize {
		return nil, errs.NewTruncated("nullable bitmap")
	}
	bm := data[4 : 4+bmSize]

	nonMissing, err := n.inner.Decode(data[4+bmSize:])
	if err != nil {
		return nil, fmt.Errorf("nullable: inner codec %s: %w", n.inner.Type(), err)
	}

	expected := bitmap.Popcount(bm)
	if len(nonMissing) != expected {
		return nil, errs.NewBitmapMismatch(expected, len(nonMissing))
	}

	missingVal := func() value.Value { return value.Missing }

	return bitmap.Interleave(bm, rowCount, nonMissing, missingVal), nil
}
