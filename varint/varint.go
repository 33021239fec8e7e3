// Package varint implements LEB128 unsigned and ZigZag-LEB128 signed
// variable-length integer encoding, the base encoding every adaptive codec
// in semcol builds on.
//
// Byte-at-a-time writes into a caller-owned buffer, no bytes.Reader
// overhead on decode.
package varint

import "github.com/arloliu/semcol/errs"

// MaxUvarintBytes is the maximum number of bytes a 32-bit unsigned LEB128
// value may occupy before decode fails with errs.ErrVarintOverflow.
const MaxUvarintBytes = 5

// AppendUvarint appends the unsigned LEB128 encoding of v to buf and returns
// the extended slice. Values below 128 encode to exactly one byte.
func AppendUvarint(buf []byte, v uint32) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}

	return append(buf, byte(v))
}

// Uvarint decodes an unsigned LEB128 value from the start of buf.
//
// Returns the decoded value and the number of bytes consumed. Fails with
// errs.ErrVarintOverflow if more than MaxUvarintBytes are consumed without a
// terminating byte, or errs.ErrTruncated if buf ends mid-integer.
func Uvarint(buf []byte) (uint32, int, error) {
	var result uint32

	for i := 0; i < MaxUvarintBytes; i++ {
		if i >= len(buf) {
			return 0, 0, errs.NewTruncated("varint")
		}

		b := buf[i]
		result |= uint32(b&0x7f) << (7 * i)

		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}

	return 0, 0, errs.ErrVarintOverflow
}

// ZigZagEncode maps a signed 64-bit integer to an unsigned 64-bit integer
// such that small-magnitude values (positive or negative) map to small
// unsigned values: n -> (n<<1) ^ (n>>63).
func ZigZagEncode(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// ZigZagDecode inverts ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -(int64(u & 1))
}

// AppendZigZag appends the ZigZag-LEB128 encoding of a signed 64-bit integer
// to buf. Unlike AppendUvarint, there is no fixed byte-count cap beyond
// termination, since ZigZag operates over the full 64-bit domain.
func AppendZigZag(buf []byte, n int64) []byte {
	u := ZigZagEncode(n)
	for u >= 0x80 {
		buf = append(buf, byte(u)|0x80)
		u >>= 7
	}

	return append(buf, byte(u))
}

// ZigZag decodes a ZigZag-LEB128 signed 64-bit integer from the start of buf.
//
// Returns the decoded value and the number of bytes consumed. Fails with
// errs.ErrTruncated if buf ends mid-integer.
func ZigZag(buf []byte) (int64, int, error) {
	var result uint64

	for i := 0; ; i++ {
		if i >= len(buf) {
			return 0, 0, errs.NewTruncated("zigzag varint")
		}

		b := buf[i]
		result |= uint64(b&0x7f) << (7 * i)

		if b&0x80 == 0 {
			return ZigZagDecode(result), i + 1, nil
		}
	}
}
