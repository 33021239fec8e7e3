// Package format defines the wire-level type tags shared by every codec,
// the header, and the column builder.
package format

// FieldType is the logical type tag assigned to a column by the profiler.
// Wire codes are fixed and must not be renumbered: they are written into
// every FieldSchemaEntry on the wire.
type FieldType uint8

const (
	STRING          FieldType = 0
	NUMBER          FieldType = 1
	BOOLEAN         FieldType = 2
	TIMESTAMP       FieldType = 3
	UUID            FieldType = 4
	ENUM            FieldType = 5
	OBJECT          FieldType = 6 // never appears in a column schema; objects are flattened away.
	ARRAY           FieldType = 7
	ARRAY_PRIMITIVE FieldType = 8
)

func (t FieldType) String() string {
	switch t {
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case BOOLEAN:
		return "BOOLEAN"
	case TIMESTAMP:
		return "TIMESTAMP"
	case UUID:
		return "UUID"
	case ENUM:
		return "ENUM"
	case OBJECT:
		return "OBJECT"
	case ARRAY:
		return "ARRAY"
	case ARRAY_PRIMITIVE:
		return "ARRAY_PRIMITIVE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether t is one of the fixed closed set of tags.
func (t FieldType) Valid() bool {
	return t <= ARRAY_PRIMITIVE
}

// CompressionType selects the opaque byte codec used by the columnar
// post-compressed container variant.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
