package codec

import (
	"fmt"
	"sort"

	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/flatten"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/profiler"
	"github.com/arloliu/semcol/value"
	"github.com/arloliu/semcol/varint"
)

// ArrayObjectCodec encodes a column of arrays-of-objects by flattening
// every row's objects into one concatenated item list, pivoting that list
// column-wise (one nested column per distinct dotted key, sorted), and
// recording per-row lengths to re-slice the item list on decode.
//
// Nested columns are encoded by the registered codec for their inferred
// type with no nullable wrapper: a key absent from a given item is simply
// omitted from that column rather than tracked positionally, so this
// codec assumes — as Scenario E does — that every item in the
// concatenation carries the same keys. Decode re-joins each nested column
// to its item purely positionally, so when a key is absent from an item
// but present in a later item of the concatenation, the earlier item
// receives the later item's value and the column does not round-trip
// exactly. (Absences that all come after the key's last occurrence do
// round-trip, since the shorter nested column simply runs out.) The compressor's per-column
// self-check catches this as a mismatch and fails the whole batch; it
// does not degrade gracefully.
type ArrayObjectCodec struct {
	resolver Resolver
}

var _ Codec = &ArrayObjectCodec{}

// NewArrayObjectCodec creates a new array-of-objects codec. The resolver
// must be set via SetResolver before Encode or Decode is called.
func NewArrayObjectCodec() *ArrayObjectCodec { return &ArrayObjectCodec{} }

// SetResolver installs the codec registry used to dispatch to nested field
// codecs.
func (c *ArrayObjectCodec) SetResolver(r Resolver) { c.resolver = r }

func (c *ArrayObjectCodec) Type() format.FieldType { return format.ARRAY }

func (c *ArrayObjectCodec) Encode(values []value.Value) ([]byte, error) {
	rowLens := make([]int, len(values))
	var items []map[string]value.Value

	for i, v := range values {
		seq, ok := v.AsSeq()
		if !ok {
			return nil, fmt.Errorf("array object codec: value %d is not an array", i)
		}
		rowLens[i] = len(seq)
		for j, item := range seq {
			m, ok := item.AsMap()
			if !ok {
				return nil, fmt.Errorf("array object codec: row %d item %d is not an object", i, j)
			}
			items = append(items, flatten.Flatten(m))
		}
	}

	buf := varint.AppendUvarint(nil, uint32(len(values)))
	for _, l := range rowLens {
		buf = varint.AppendUvarint(buf, uint32(l))
	}

	if len(items) == 0 {
		return buf, nil
	}

	keys := unionKeys(items)

	buf = varint.AppendUvarint(buf, uint32(len(keys)))
	for _, key := range keys {
		col := make([]value.Value, 0, len(items))
		for _, item := range items {
			if v, ok := item[key]; ok {
				col = append(col, v)
			}
		}

		result := profiler.Profile(col)

		codec, err := c.resolver.Get(result.Type)
		if err != nil {
			return nil, err
		}

		payload, err := codec.Encode(col)
		if err != nil {
			return nil, fmt.Errorf("array object codec: field %q: %w", key, err)
		}

		if len(key) >= 255 {
			return nil, fmt.Errorf("array object codec: field name %q too long", key)
		}
		buf = append(buf, byte(len(key)))
		buf = append(buf, key...)
		buf = append(buf, byte(result.Type))
		buf = varint.AppendUvarint(buf, uint32(len(payload)))
		buf = append(buf, payload...)
	}

	return buf, nil
}

func unionKeys(items []map[string]value.Value) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for k := range item {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func (c *ArrayObjectCodec) Decode(data []byte) ([]value.Value, error) {
	arrayCount, n, err := varint.Uvarint(data)
	if err != nil {
		return nil, fmt.Errorf("array object codec: array count: %w", err)
	}
	offset := n

	rowLens := make([]int, arrayCount)
	total := 0
	for i := uint32(0); i < arrayCount; i++ {
		l, n, err := varint.Uvarint(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("array object codec: row length %d: %w", i, err)
		}
		offset += n
		rowLens[i] = int(l)
		total += int(l)
	}

	out := make([]value.Value, arrayCount)

	if total == 0 {
		for i := range out {
			out[i] = value.Seq(nil)
		}
		return out, nil
	}

	fieldCount, n, err := varint.Uvarint(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("array object codec: field count: %w", err)
	}
	offset += n

	columns := make(map[string][]value.Value, fieldCount)
	names := make([]string, fieldCount)

	for i := uint32(0); i < fieldCount; i++ {
		if offset >= len(data) {
			return nil, errs.NewTruncated("array object codec field name length")
		}
		nameLen := int(data[offset])
		offset++
		if offset+nameLen > len(data) {
			return nil, errs.NewTruncated("array object codec field name")
		}
		name := string(data[offset : offset+nameLen])
		offset += nameLen

		if offset >= len(data) {
			return nil, errs.NewTruncated("array object codec field type")
		}
		fieldType := format.FieldType(data[offset])
		offset++

		payloadLen, n, err := varint.Uvarint(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("array object codec: field %q payload length: %w", name, err)
		}
		offset += n

		if offset+int(payloadLen) > len(data) {
			return nil, errs.NewTruncated("array object codec field payload")
		}
		payload := data[offset : offset+int(payloadLen)]
		offset += int(payloadLen)

		codec, err := c.resolver.Get(fieldType)
		if err != nil {
			return nil, err
		}

		col, err := codec.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("array object codec: field %q: %w", name, err)
		}

		columns[name] = col
		names[i] = name
	}

	items := make([]map[string]value.Value, total)
	for i := range items {
		items[i] = make(map[string]value.Value, fieldCount)
		for _, name := range names {
			col := columns[name]
			if i < len(col) {
				items[i][name] = col[i]
			}
		}
	}

	pos := 0
	for i, l := range rowLens {
		seq := make([]value.Value, l)
		for j := 0; j < l; j++ {
			seq[j] = value.Map(flatten.Unflatten(items[pos]))
			pos++
		}
		out[i] = value.Seq(seq)
	}

	return out, nil
}
