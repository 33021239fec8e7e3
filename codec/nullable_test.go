package codec

import (
	"encoding/binary"
	"testing"

	"github.com/arloliu/semcol/bitmap"
	"github.com/arloliu/semcol/value"
	"github.com/stretchr/testify/require"
)

func TestNullable_RoundTripWithMissingInterleaved(t *testing.T) {
	n := NewNullable(NewNumberCodec())

	values := []value.Value{value.Number(1), value.Missing, value.Number(2), value.Missing, value.Number(3)}

	buf, err := n.Encode(values)
	require.NoError(t, err)

	rowCount := binary.LittleEndian.Uint32(buf[:4])
	require.Equal(t, uint32(5), rowCount)

	bm := buf[4 : 4+bitmap.Size(5)]
	require.Equal(t, 3, bitmap.Popcount(bm))

	out, err := n.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestNullable_AllMissing(t *testing.T) {
	n := NewNullable(NewStringCodec())

	values := []value.Value{value.Missing, value.Missing, value.Missing}

	buf, err := n.Encode(values)
	require.NoError(t, err)

	out, err := n.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestNullable_NullDistinctFromMissing(t *testing.T) {
	n := NewNullable(NewStringCodec())

	values := []value.Value{value.String("x"), value.Null, value.Missing, value.String("y")}

	buf, err := n.Encode(values)
	require.NoError(t, err)

	out, err := n.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, out)
	require.True(t, out[1].IsNull())
	require.True(t, out[2].IsMissing())
}

func TestNullable_BitmapMismatchError(t *testing.T) {
	n := NewNullable(NewNumberCodec())

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 3)
	buf = append(buf, 0xFF) // bitmap byte claims 8 set bits, but only 3 rows exist
	// inner codec payload is empty -> decodes to zero values, mismatching popcount
	_, err := n.Decode(buf)
	require.Error(t, err)
}
