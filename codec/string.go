package codec

import (
	"fmt"

	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/value"
	"github.com/arloliu/semcol/varint"
)

const (
	stringModeRaw      byte = 0x00
	stringModeStandard byte = 0x01
	stringModeRLE      byte = 0x02

	// dictionaryRawThreshold is the unique-to-total ratio at or above which the
	// dictionary is abandoned in favor of storing values inline.
	dictionaryRawThreshold = 0.7
)

// StringCodec adaptively represents a column of strings (and interleaved
// nulls — MISSING is handled one layer up, by the nullable wrapper) as
// either inline length-prefixed values, or a dictionary of unique values
// plus an index stream chosen as the smaller of a plain varint-per-value
// stream and a run-length-encoded one.
type StringCodec struct{}

var _ Codec = StringCodec{}

// NewStringCodec creates a new string codec.
func NewStringCodec() StringCodec { return StringCodec{} }

func (StringCodec) Type() format.FieldType { return format.STRING }

// stringEntry is one dictionary slot: either the null entry or a string.
type stringEntry struct {
	isNull bool
	s      string
}

func (StringCodec) Encode(values []value.Value) ([]byte, error) {
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
				return nil, fmt.Errorf("string codec: value %d is not a string or null", i)
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

	if len(values) > 0 && float64(len(unique)) >= dictionaryRawThreshold*float64(len(values)) {
		return encodeStringRaw(values), nil
	}

	hb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(hb)
	hb.B = append(hb.B, 0)
	hb.B = varint.AppendUvarint(hb.B, uint32(len(unique)))
	for _, e := range unique {
		hb.B = appendStringEntry(hb.B, e)
	}

	sb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(sb)
	sb.B = encodeStandardIndices(sb.B, indices)

	rb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(rb)
	rb.B = encodeRLEIndices(rb.B, indices)

	indexStream := sb
	mode := stringModeStandard
	if rb.Len() < sb.Len() {
		indexStream = rb
		mode = stringModeRLE
	}

	out := make([]byte, hb.Len()+indexStream.Len())
	n := copy(out, hb.Bytes())
	copy(out[n:], indexStream.Bytes())
	out[0] = mode

	return out, nil
}

func appendStringEntry(buf []byte, e stringEntry) []byte {
	if e.isNull {
		return varint.AppendUvarint(buf, 0)
	}
	buf = varint.AppendUvarint(buf, uint32(len(e.s)+1))
	return append(buf, e.s...)
}

func encodeStringRaw(values []value.Value) []byte {
	bb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(bb)

	bb.B = append(bb.B, stringModeRaw)
	for _, v := range values {
		if v.IsNull() {
			bb.B = varint.AppendUvarint(bb.B, 0)
			continue
		}
		s, _ := v.AsString()
		bb.B = varint.AppendUvarint(bb.B, uint32(len(s)+1))
		bb.B = append(bb.B, s...)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out
}

func encodeStandardIndices(buf []byte, indices []int) []byte {
	for _, idx := range indices {
		buf = varint.AppendUvarint(buf, uint32(idx))
	}

	return buf
}

func encodeRLEIndices(buf []byte, indices []int) []byte {
	i := 0
	for i < len(indices) {
		run := 1
		for i+run < len(indices) && indices[i+run] == indices[i] {
			run++
		}
		buf = varint.AppendUvarint(buf, uint32(indices[i]))
		buf = varint.AppendUvarint(buf, uint32(run))
		i += run
	}

	return buf
}

func (StringCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) == 0 {
		return []value.Value{}, nil
	}

	mode := data[0]
	offset := 1

	switch mode {
	case stringModeRaw:
		return decodeStringRaw(data[offset:])
	case stringModeStandard, stringModeRLE:
		return decodeStringDictionary(data[offset:], mode)
	default:
		return nil, errs.NewUnknownMode("string", mode)
	}
}

func decodeStringRaw(body []byte) ([]value.Value, error) {
	var out []value.Value
	offset := 0
	for offset < len(body) {
		entry, n, err := readStringEntry(body[offset:])
		if err != nil {
			return nil, fmt.Errorf("string codec: raw mode: %w", err)
		}
		offset += n
		out = append(out, entry)
	}

	return out, nil
}

func decodeStringDictionary(body []byte, mode byte) ([]value.Value, error) {
	count, n, err := varint.Uvarint(body)
	if err != nil {
		return nil, fmt.Errorf("string codec: dictionary count: %w", err)
	}
	offset := n

	dict := make([]value.Value, count)
	for i := uint32(0); i < count; i++ {
		entry, consumed, err := readStringEntry(body[offset:])
		if err != nil {
			return nil, fmt.Errorf("string codec: dictionary entry %d: %w", i, err)
		}
		offset += consumed
		dict[i] = entry
	}

	var out []value.Value
	switch mode {
	case stringModeStandard:
		for offset < len(body) {
			idx, consumed, err := varint.Uvarint(body[offset:])
			if err != nil {
				return nil, fmt.Errorf("string codec: standard index: %w", err)
			}
			offset += consumed
			v, err := lookupDict(dict, idx)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	case stringModeRLE:
		for offset < len(body) {
			idx, n1, err := varint.Uvarint(body[offset:])
			if err != nil {
				return nil, fmt.Errorf("string codec: rle index: %w", err)
			}
			offset += n1

			run, n2, err := varint.Uvarint(body[offset:])
			if err != nil {
				return nil, fmt.Errorf("string codec: rle run length: %w", err)
			}
			offset += n2

			v, err := lookupDict(dict, idx)
			if err != nil {
				return nil, err
			}
			for j := uint32(0); j < run; j++ {
				out = append(out, v)
			}
		}
	}

	return out, nil
}

func lookupDict(dict []value.Value, idx uint32) (value.Value, error) {
	if int(idx) >= len(dict) {
		return value.Value{}, errs.ErrDictIndexOutOfRange
	}

	return dict[idx], nil
}

// readStringEntry reads one null-aware length-prefixed string entry,
// returning the decoded value and the number of bytes consumed.
func readStringEntry(buf []byte) (value.Value, int, error) {
	l, n, err := varint.Uvarint(buf)
	if err != nil {
		return value.Value{}, 0, err
	}

	if l == 0 {
		return value.Null, n, nil
	}

	strLen := int(l - 1)
	if n+strLen > len(buf) {
		return value.Value{}, 0, errs.NewTruncated("string codec entry")
	}

	s := string(buf[n : n+strLen])
	return value.String(s), n + strLen, nil
}
