package codec

import (
	"fmt"

	"github.com/arloliu/semcol/endian"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/value"
)

const (
	enumNullMarker       byte = 255
	enumMaxStringLen          = 255
	enumNibbleThreshold       = 16
)

// EnumCodec stores a column of low-cardinality strings (and interleaved
// nulls) as a dictionary plus an index stream, with the index stream
// packed to 4-bit nibbles when the dictionary is small enough to fit.
type EnumCodec struct{}

var _ Codec = EnumCodec{}

// NewEnumCodec creates a new enum codec.
func NewEnumCodec() EnumCodec { return EnumCodec{} }

func (EnumCodec) Type() format.FieldType { return format.ENUM }

func (EnumCodec) Encode(values []value.Value) ([]byte, error) {
	unique := make([]stringEntry, 0)
	nullIndex := -1
	strIndex := make(map[string]int)
	indices := make([]int, len(values))

	for i, v := range values {
		switch {
		case v.IsNull():
			if nullIndex < 0 {
				nullIndex = len(unique)
				unique = append(unique, stringEntry{isNull: true})
			}
			indices[i] = nullIndex
		default:
			s, ok := v.AsString()
			if !ok {
				return nil, fmt.Errorf("enum codec: value %d is not a string or null", i)
			}
			if len(s) >= enumMaxStringLen {
				return nil, errs.ErrEnumStringTooLong
			}
			idx, ok := strIndex[s]
			if !ok {
				idx = len(unique)
				unique = append(unique, stringEntry{s: s})
				strIndex[s] = idx
			}
			indices[i] = idx
		}
	}

	bb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(bb)

	bb.B = endian.GetLittleEndianEngine().AppendUint32(bb.B, uint32(len(values)))
	bb.B = append(bb.B, byte(len(unique)))

	for _, e := range unique {
		if e.isNull {
			bb.B = append(bb.B, enumNullMarker)
			continue
		}
		bb.B = append(bb.B, byte(len(e.s)))
		bb.B = append(bb.B, e.s...)
	}

	if len(unique) > enumNibbleThreshold {
		for _, idx := range indices {
			bb.B = append(bb.B, byte(idx))
		}

		out := make([]byte, bb.Len())
		copy(out, bb.Bytes())

		return out, nil
	}

	for i := 0; i < len(indices); i += 2 {
		high := byte(indices[i])
		var low byte
		if i+1 < len(indices) {
			low = byte(indices[i+1])
		}
		bb.B = append(bb.B, high<<4|low)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

func (EnumCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) < 5 {
		return nil, errs.NewTruncated("enum codec header")
	}

	count := endian.GetLittleEndianEngine().Uint32(data[:4])
	uniqueCount := int(data[4])
	offset := 5

	dict := make([]value.Value, uniqueCount)
	for i := 0; i < uniqueCount; i++ {
		if offset >= len(data) {
			return nil, errs.NewTruncated("enum codec dictionary")
		}
		l := data[offset]
		offset++
		if l == enumNullMarker {
			dict[i] = value.Null
			continue
		}
		if offset+int(l) > len(data) {
			return nil, errs.NewTruncated("enum codec dictionary entry")
		}
		dict[i] = value.String(string(data[offset : offset+int(l)]))
		offset += int(l)
	}

	out := make([]value.Value, count)

	if uniqueCount > enumNibbleThreshold {
		if offset+int(count) > len(data) {
			return nil, errs.NewTruncated("enum codec indices")
		}
		for i := uint32(0); i < count; i++ {
			idx := int(data[offset+int(i)])
			v, err := lookupDict(dict, uint32(idx))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	packedLen := (int(count) + 1) / 2
	if offset+packedLen > len(data) {
		return nil, errs.NewTruncated("enum codec nibble indices")
	}
	for i := uint32(0); i < count; i++ {
		b := data[offset+int(i/2)]
		var idx byte
		if i%2 == 0 {
			idx = b >> 4
		} else {
			idx = b & 0x0F
		}
		v, err := lookupDict(dict, uint32(idx))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
