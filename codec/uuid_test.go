package codec

import (
	"testing"

	"github.com/arloliu/semcol/value"
	"github.com/stretchr/testify/require"
)

func TestUUIDCodec_RoundTrip(t *testing.T) {
	ids := []string{
		"550e8400-e29b-41d4-a716-446655440000",
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	}
	values := make([]value.Value, len(ids))
	for i, id := range ids {
		values[i] = value.String(id)
	}

	c := NewUUIDCodec()
	buf, err := c.Encode(values)
	require.NoError(t, err)
	require.Len(t, buf, 16*len(ids))

	out, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestUUIDCodec_InvalidUUID(t *testing.T) {
	c := NewUUIDCodec()
	_, err := c.Encode([]value.Value{value.String("not-a-uuid")})
	require.Error(t, err)
}

func TestUUIDCodec_TruncatedPayload(t *testing.T) {
	c := NewUUIDCodec()
	_, err := c.Decode(make([]byte, 15))
	require.Error(t, err)
}
