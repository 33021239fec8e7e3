package codec

import (
	"testing"

	"github.com/arloliu/semcol/value"
	"github.com/arloliu/semcol/varint"
	"github.com/stretchr/testify/require"
)

func nums(ns ...float64) []value.Value {
	out := make([]value.Value, len(ns))
	for i, n := range ns {
		out[i] = value.Number(n)
	}
	return out
}

func TestNumberCodec_ScenarioC_Integer(t *testing.T) {
	c := NewNumberCodec()
	buf, err := c.Encode(nums(1, 2, 3))
	require.NoError(t, err)

	expected := append([]byte{numberModeInteger}, varint.AppendZigZag(nil, 1)...)
	expected = append(expected, varint.AppendZigZag(nil, 2)...)
	expected = append(expected, varint.AppendZigZag(nil, 3)...)
	require.Equal(t, expected, buf)

	out, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, nums(1, 2, 3), out)
}

func TestNumberCodec_ScenarioC_Decimal(t *testing.T) {
	c := NewNumberCodec()
	buf, err := c.Encode(nums(1.5, 2.25, 3.0))
	require.NoError(t, err)
	require.Equal(t, numberModeDecimal, buf[0])
	require.Equal(t, byte(2), buf[1])

	expected := []byte{numberModeDecimal, 2}
	expected = varint.AppendZigZag(expected, 150)
	expected = varint.AppendZigZag(expected, 225)
	expected = varint.AppendZigZag(expected, 300)
	require.Equal(t, expected, buf)

	out, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, nums(1.5, 2.25, 3.0), out)
}

func TestNumberCodec_ScenarioC_Float(t *testing.T) {
	c := NewNumberCodec()
	buf, err := c.Encode(nums(1.0, 2.0, 3.141592653589793))
	require.NoError(t, err)
	require.Equal(t, numberModeFloat, buf[0])
	require.Len(t, buf, 1+3*8)

	out, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, nums(1.0, 2.0, 3.141592653589793), out)
}
