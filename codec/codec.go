// Package codec implements the per-type field codecs: UUID, Timestamp,
// Boolean, Number, String, Enum, ArrayPrimitive, and ArrayObject, plus the
// Nullable wrapper every column is actually encoded through.
//
// Each codec is a tagged variant over the fixed format.FieldType set,
// registered by instance in package registry rather than resolved through
// open inheritance — see the design notes' "polymorphism over codecs".
// The abstraction needs only three operations, mirrored here as an
// interface: Type (a static supports-check), Encode, Decode.
package codec

import (
	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/value"
)

// Codec encodes and decodes the non-MISSING values of a single column for
// one logical format.FieldType. Implementations never see MISSING; that is
// handled uniformly by the Nullable wrapper.
type Codec interface {
	// Type reports the logical field type this codec handles.
	Type() format.FieldType

	// Encode serializes values (which must not contain value.Missing) to
	// this codec's wire payload.
	Encode(values []value.Value) ([]byte, error)

	// Decode parses a wire payload produced by Encode back into values, in
	// original row order. The payload is exactly this codec's bytes: no
	// trailing data, no leading bitmap.
	Decode(data []byte) ([]value.Value, error)
}

// Resolver looks up the registered codec for a logical field type. Array
// codecs hold a Resolver rather than a concrete registry so that recursive
// dispatch (an ARRAY column's nested field types) is resolved lazily at
// encode/decode time instead of at registration time, when the full
// registry may not exist yet.
type Resolver interface {
	Get(t format.FieldType) (Codec, error)
}
