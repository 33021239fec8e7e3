package compressor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/semcol/codec"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/registry"
	"github.com/arloliu/semcol/value"
)

func TestCompress_EmptyBatch(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.Compress(nil)
	require.ErrorIs(t, err, errs.ErrEmptyBatch)

	_, err = c.Compress([]map[string]any{})
	require.ErrorIs(t, err, errs.ErrEmptyBatch)
}

func TestCompressDecompress_ScenarioD_NullVsMissing(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	records := []map[string]any{
		{"a": float64(1), "b": nil},
		{"a": float64(2)},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Contains(t, out[0], "a")
	require.Contains(t, out[0], "b")
	require.Nil(t, out[0]["b"])

	require.Contains(t, out[1], "a")
	require.NotContains(t, out[1], "b")
}

func TestCompressDecompress_ScenarioE_NestedArrayOfObjects(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	records := []map[string]any{
		{"xs": []any{
			map[string]any{"k": float64(1)},
			map[string]any{"k": float64(2)},
		}},
		{"xs": []any{
			map[string]any{"k": float64(3)},
		}},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, records, out)
}

func TestCompressDecompress_ScenarioF_TimestampsSharingBase(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	records := []map[string]any{
		{"ts": "2025-01-01T00:00:00.000Z"},
		{"ts": "2025-01-01T00:00:00.001Z"},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, records, out)
}

func TestCompressDecompress_MixedColumnTypes(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	records := []map[string]any{
		{
			"id":     "4f9e2b3a-6c1d-4e2f-9a8b-0c1d2e3f4a5b",
			"status": "active",
			"score":  93.5,
			"active": true,
			"tags":   []any{"x", "y"},
		},
		{
			"id":     "7a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9",
			"status": "inactive",
			"score":  87.25,
			"active": false,
			"tags":   []any{"z"},
		},
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, records, out)
}

func TestCompressColumnarPost_RoundTrip(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	records := []map[string]any{
		{"a": float64(1), "b": "hello"},
		{"a": float64(2), "b": "world"},
		{"a": float64(3), "b": "hello"},
	}

	data, err := c.CompressColumnarPost(records)
	require.NoError(t, err)
	require.Equal(t, []byte("SJCB"), data[:4])

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, records, out)
}

func TestCompress_MagicIsStandard(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	data, err := c.Compress([]map[string]any{{"a": float64(1)}})
	require.NoError(t, err)
	require.Equal(t, []byte("SAJC"), data[:4])
}

// badCodec always returns a decode result that differs from what it
// encoded, forcing the mandatory round-trip self-check to fail.
type badCodec struct{}

func (badCodec) Type() format.FieldType { return format.NUMBER }
func (badCodec) Encode(values []value.Value) ([]byte, error) {
	return []byte{0x00}, nil
}
func (badCodec) Decode(data []byte) ([]value.Value, error) {
	return []value.Value{value.Number(999)}, nil
}

func TestCompress_RoundTripSelfCheckFails(t *testing.T) {
	r := registry.Default()
	r.Register(badCodec{})

	c, err := New(WithRegistry(r))
	require.NoError(t, err)

	_, err = c.Compress([]map[string]any{{"a": float64(1)}})
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrRoundTripFailed)
}

func TestNew_IncompleteRegistryFails(t *testing.T) {
	r := registry.New()
	r.Register(codec.NewBooleanCodec())

	_, err := New(WithRegistry(r))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNoCodec)
}

func TestCompressDecompress_EnumAndDictionaryStrings(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	records := make([]map[string]any, 0, 5)
	for _, s := range []string{"A", "B", "A", "C", "B"} {
		records = append(records, map[string]any{"letter": s})
	}

	data, err := c.Compress(records)
	require.NoError(t, err)

	out, err := c.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, records, out)
}

func TestCompressDecompress_ParallelAndSequentialAgree(t *testing.T) {
	records := []map[string]any{}
	for i := 0; i < 10; i++ {
		records = append(records, map[string]any{
			"f0": float64(i), "f1": float64(i * 2), "f2": "x",
			"f3": true, "f4": float64(i) + 0.5, "f5": "y",
		})
	}

	seq, err := New(WithParallel(false))
	require.NoError(t, err)
	par, err := New(WithParallel(true))
	require.NoError(t, err)

	seqData, err := seq.Compress(records)
	require.NoError(t, err)
	parData, err := par.Compress(records)
	require.NoError(t, err)

	require.Equal(t, seqData, parData)
}

func TestDecompress_TruncatedInput(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.Decompress([]byte{0x53, 0x41})
	require.Error(t, err)
}

func TestDecompress_InvalidMagic(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.Decompress([]byte("XXXX\x01\x00\x00"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestPackageLevelDefaultInstance(t *testing.T) {
	data, err := Compress([]map[string]any{{"a": float64(1)}})
	require.NoError(t, err)

	out, err := Decompress(data)
	require.NoError(t, err)
	require.Equal(t, []map[string]any{{"a": float64(1)}}, out)
}
