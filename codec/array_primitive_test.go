package codec

import (
	"testing"

	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/value"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[format.FieldType]Codec

func (r fakeResolver) Get(t format.FieldType) (Codec, error) {
	c, ok := r[t]
	if !ok {
		return nil, errs.NewNoCodec(t)
	}
	return c, nil
}

func newTestResolver() fakeResolver {
	return fakeResolver{
		format.NUMBER:  NewNumberCodec(),
		format.STRING:  NewStringCodec(),
		format.BOOLEAN: NewBooleanCodec(),
		format.ENUM:    NewEnumCodec(),
	}
}

func TestArrayPrimitiveCodec_RoundTrip(t *testing.T) {
	c := NewArrayPrimitiveCodec()
	c.SetResolver(newTestResolver())

	values := []value.Value{
		value.Seq([]value.Value{value.Number(1), value.Number(2)}),
		value.Seq([]value.Value{value.Number(3)}),
		value.Seq(nil),
	}

	buf, err := c.Encode(values)
	require.NoError(t, err)

	out, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestArrayPrimitiveCodec_AllEmptyRows(t *testing.T) {
	c := NewArrayPrimitiveCodec()
	c.SetResolver(newTestResolver())

	values := []value.Value{value.Seq(nil), value.Seq(nil)}

	buf, err := c.Encode(values)
	require.NoError(t, err)

	out, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestArrayPrimitiveCodec_StringElements(t *testing.T) {
	c := NewArrayPrimitiveCodec()
	c.SetResolver(newTestResolver())

	values := []value.Value{
		value.Seq([]value.Value{value.String("a"), value.String("b")}),
		value.Seq([]value.Value{value.String("c")}),
	}

	buf, err := c.Encode(values)
	require.NoError(t, err)

	out, err := c.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, out)
}
