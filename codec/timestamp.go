package codec

import (
	"fmt"
	"time"

	"github.com/arloliu/semcol/endian"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/profiler"
	"github.com/arloliu/semcol/value"
	"github.com/arloliu/semcol/varint"
)

// TimestampCodec encodes ISO-8601 timestamps as a delta-from-base stream:
// the first timestamp is stored in full (8-byte little-endian signed
// milliseconds since epoch), and every timestamp — including the first —
// is additionally stored as a ZigZag-LEB128 delta from that base. This
// keeps the delta-from-base shape of a single delta level (no
// delta-of-delta), since this format's columns are not assumed to have
// the regular sampling intervals a time-series encoder would expect.
//
// Precision beyond milliseconds, and timezone information, are lost: every
// timestamp round-trips through an integer millisecond epoch and is
// re-serialized in UTC.
type TimestampCodec struct{}

var _ Codec = TimestampCodec{}

// NewTimestampCodec creates a new timestamp codec.
func NewTimestampCodec() TimestampCodec { return TimestampCodec{} }

func (TimestampCodec) Type() format.FieldType { return format.TIMESTAMP }

func (TimestampCodec) Encode(values []value.Value) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}

	millis := make([]int64, len(values))
	for i, v := range values {
		s, ok := v.AsString()
		if !ok {
			return nil, fmt.Errorf("timestamp codec: value %d is not a string", i)
		}

		t, ok := profiler.ParseTimestamp(s)
		if !ok {
			return nil, fmt.Errorf("timestamp codec: value %d %q is not a recognized ISO-8601 timestamp", i, s)
		}

		millis[i] = t.UnixMilli()
	}

	base := millis[0]

	bb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(bb)

	bb.B = endian.GetLittleEndianEngine().AppendUint64(bb.B, uint64(base))

	for _, ms := range millis {
		bb.B = varint.AppendZigZag(bb.B, ms-base)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

func (TimestampCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) == 0 {
		return []value.Value{}, nil
	}

	if len(data) < 8 {
		return nil, errs.NewTruncated("timestamp codec base")
	}

	base := int64(endian.GetLittleEndianEngine().Uint64(data[:8]))

	var out []value.Value
	offset := 8
	for offset < len(data) {
		delta, n, err := varint.ZigZag(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("timestamp codec: %w", err)
		}
		offset += n

		ts := base + delta
		out = append(out, value.String(formatMillis(ts)))
	}

	return out, nil
}

// formatMillis renders a millisecond epoch as an ISO-8601 UTC string with
// millisecond precision, e.g. "2025-01-01T00:00:00.000Z".
func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}
