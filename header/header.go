// Package header encodes and decodes the batch container header: the
// magic bytes, version, and field schema array that precede the
// concatenated per-column buffers on the wire.
package header

import (
	"fmt"

	"github.com/arloliu/semcol/endian"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
)

var littleEndian = endian.GetLittleEndianEngine()

// MagicStandard identifies the standard container (per-column buffers
// stored as the codecs produced them).
var MagicStandard = [4]byte{'S', 'A', 'J', 'C'}

// MagicColumnarCompressed identifies the columnar-post-compressed
// container (per-column buffers additionally passed through the opaque
// byte compressor).
var MagicColumnarCompressed = [4]byte{'S', 'J', 'C', 'B'}

// CurrentVersion is the version byte this package writes.
const CurrentVersion = 1

// FieldSchemaEntry describes one column's name, logical type, and encoded
// byte length on the wire.
type FieldSchemaEntry struct {
	Name       string
	Type       format.FieldType
	ByteLength uint32
}

// Header is the parsed form of a batch container's leading bytes.
type Header struct {
	Magic   [4]byte
	Version uint8
	Fields  []FieldSchemaEntry
}

// IsColumnarCompressed reports whether h's magic marks a columnar
// post-compressed container.
func (h Header) IsColumnarCompressed() bool {
	return h.Magic == MagicColumnarCompressed
}

// Encode serializes h: magic | version | u16 LE fieldCount | fields, each
// field as u8 nameLen | name | u8 typeCode | u32 LE byteLength.
func Encode(h Header) ([]byte, error) {
	if len(h.Fields) > 0xFFFF {
		return nil, fmt.Errorf("header: %d fields exceeds u16 field count", len(h.Fields))
	}

	buf := make([]byte, 0, 7+len(h.Fields)*8)
	buf = append(buf, h.Magic[:]...)
	buf = append(buf, h.Version)
	buf = littleEndian.AppendUint16(buf, uint16(len(h.Fields)))

	for _, f := range h.Fields {
		if len(f.Name) > 0xFF {
			return nil, fmt.Errorf("header: field name %q exceeds u8 length", f.Name)
		}

		buf = append(buf, byte(len(f.Name)))
		buf = append(buf, f.Name...)
		buf = append(buf, byte(f.Type))
		buf = littleEndian.AppendUint32(buf, f.ByteLength)
	}

	return buf, nil
}

// Decode parses a Header from the front of data and returns it along with
// the number of bytes consumed.
func Decode(data []byte) (Header, int, error) {
	if len(data) < 7 {
		return Header{}, 0, errs.NewTruncated("header")
	}

	var h Header
	copy(h.Magic[:], data[:4])

	if h.Magic != MagicStandard && h.Magic != MagicColumnarCompressed {
		return Header{}, 0, errs.ErrInvalidMagic
	}

	h.Version = data[4]
	fieldCount := littleEndian.Uint16(data[5:7])
	offset := 7

	h.Fields = make([]FieldSchemaEntry, fieldCount)
	for i := uint16(0); i < fieldCount; i++ {
		if offset >= len(data) {
			return Header{}, 0, errs.NewTruncated("header field name length")
		}
		nameLen := int(data[offset])
		offset++

		if offset+nameLen+1+4 > len(data) {
			return Header{}, 0, errs.NewTruncated("header field entry")
		}

		name := string(data[offset : offset+nameLen])
		offset += nameLen

		fieldType := format.FieldType(data[offset])
		offset++

		byteLength := littleEndian.Uint32(data[offset : offset+4])
		offset += 4

		h.Fields[i] = FieldSchemaEntry{Name: name, Type: fieldType, ByteLength: byteLength}
	}

	return h, offset, nil
}
