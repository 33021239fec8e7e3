package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/semcol/endian"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/internal/pool"
	"github.com/arloliu/semcol/value"
	"github.com/arloliu/semcol/varint"
)

const (
	numberModeFloat   byte = 0x00
	numberModeInteger byte = 0x01
	numberModeDecimal byte = 0x02

	// decimalTolerance is the absolute tolerance for deciding a scaled
	// value is exactly representable as an integer.
	decimalTolerance = 1e-9
	// maxDecimalScale is the largest power-of-ten scale tried.
	maxDecimalScale = 6
)

// NumberCodec adaptively picks the cheapest of three representations for a
// column of numbers: integer (ZigZag varint), fixed-point decimal (scaled
// ZigZag varint), or IEEE-754 double, in that preference order. The mode
// byte at offset 0 of the payload selects the decoder.
type NumberCodec struct{}

var _ Codec = NumberCodec{}

// NewNumberCodec creates a new number codec.
func NewNumberCodec() NumberCodec { return NumberCodec{} }

func (NumberCodec) Type() format.FieldType { return format.NUMBER }

func (NumberCodec) Encode(values []value.Value) ([]byte, error) {
	nums, cleanup := pool.GetFloat64Slice(len(values))
	defer cleanup()

	for i, v := range values {
		f, ok := v.AsFloat64()
		if !ok {
			return nil, fmt.Errorf("number codec: value %d is not a number", i)
		}
		nums[i] = f
	}

	if allIntegral(nums) {
		return encodeInteger(nums), nil
	}

	if scale, ok := findDecimalScale(nums); ok {
		return encodeDecimal(nums, scale), nil
	}

	return encodeFloat(nums), nil
}

func allIntegral(nums []float64) bool {
	for _, n := range nums {
		if n != math.Trunc(n) {
			return false
		}
	}

	return true
}

func encodeInteger(nums []float64) []byte {
	buf := make([]byte, 0, 1+len(nums)*2)
	buf = append(buf, numberModeInteger)
	for _, n := range nums {
		buf = varint.AppendZigZag(buf, int64(n))
	}

	return buf
}

// findDecimalScale finds the smallest scale s in 1..maxDecimalScale such
// that every value, scaled by 10^s and rounded, differs from the true
// scaled value by less than decimalTolerance. Returns ok=false if no such
// scale exists (caller falls back to float mode).
func findDecimalScale(nums []float64) (int, bool) {
	for s := 1; s <= maxDecimalScale; s++ {
		factor := math.Pow(10, float64(s))
		if allRepresentableAtScale(nums, factor) {
			return s, true
		}
	}

	return 0, false
}

func allRepresentableAtScale(nums []float64, factor float64) bool {
	for _, n := range nums {
		scaled := n * factor
		if math.Abs(scaled-math.Round(scaled)) >= decimalTolerance {
			return false
		}
	}

	return true
}

func encodeDecimal(nums []float64, scale int) []byte {
	factor := math.Pow(10, float64(scale))

	buf := make([]byte, 0, 2+len(nums)*2)
	buf = append(buf, numberModeDecimal, byte(scale))
	for _, n := range nums {
		buf = varint.AppendZigZag(buf, int64(math.Round(n*factor)))
	}

	return buf
}

func encodeFloat(nums []float64) []byte {
	buf := make([]byte, 0, 1+len(nums)*8)
	buf = append(buf, numberModeFloat)
	for _, n := range nums {
		buf = endian.GetLittleEndianEngine().AppendUint64(buf, math.Float64bits(n))
	}

	return buf
}

func (NumberCodec) Decode(data []byte) ([]value.Value, error) {
	if len(data) == 0 {
		return []value.Value{}, nil
	}

	mode := data[0]
	body := data[1:]

	switch mode {
	case numberModeInteger:
		return decodeInteger(body)
	case numberModeDecimal:
		return decodeDecimal(body)
	case numberModeFloat:
		return decodeFloat(body)
	default:
		return nil, errs.NewUnknownMode("number", mode)
	}
}

func decodeInteger(body []byte) ([]value.Value, error) {
	var out []value.Value
	offset := 0
	for offset < len(body) {
		n, consumed, err := varint.ZigZag(body[offset:])
		if err != nil {
			return nil, fmt.Errorf("number codec: integer mode: %w", err)
		}
		offset += consumed
		out = append(out, value.Number(float64(n)))
	}

	return out, nil
}

func decodeDecimal(body []byte) ([]value.Value, error) {
	if len(body) == 0 {
		return nil, errs.NewTruncated("number codec decimal scale")
	}

	scale := body[0]
	factor := math.Pow(10, float64(scale))

	var out []value.Value
	offset := 1
	for offset < len(body) {
		n, consumed, err := varint.ZigZag(body[offset:])
		if err != nil {
			return nil, fmt.Errorf("number codec: decimal mode: %w", err)
		}
		offset += consumed
		out = append(out, value.Number(float64(n)/factor))
	}

	return out, nil
}

func decodeFloat(body []byte) ([]value.Value, error) {
	if len(body)%8 != 0 {
		return nil, errs.NewTruncated("number codec float body")
	}

	engine := endian.GetLittleEndianEngine()
	count := len(body) / 8
	out := make([]value.Value, count)
	for i := 0; i < count; i++ {
		bits := engine.Uint64(body[i*8 : i*8+8])
		out[i] = value.Number(math.Float64frombits(bits))
	}

	return out, nil
}
