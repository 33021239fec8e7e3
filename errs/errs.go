// Package errs defines the sentinel and structured errors returned by the
// semcol codecs, compressor, and header packages.
//
// Callers should use errors.Is for the sentinel-style errors and errors.As
// for the structured ones that carry extra fields (NoCodec, RoundTripFailed,
// Truncated, UnknownMode, BitmapMismatch).
package errs

import (
	"errors"
	"fmt"

	"github.com/arloliu/semcol/format"
)

// Sentinel errors. Parameter-less error kinds are plain sentinels; kinds
// that need to carry detail are implemented as typed errors below, each
// wrapping one of these sentinels so errors.Is still matches.
var (
	ErrEmptyBatch          = errors.New("semcol: compress called with an empty batch")
	ErrVarintOverflow      = errors.New("semcol: varint overflow")
	ErrTruncated           = errors.New("semcol: truncated input")
	ErrInvalidMagic        = errors.New("semcol: invalid magic bytes")
	ErrNoCodec             = errors.New("semcol: no codec registered for type")
	ErrRoundTripFailed     = errors.New("semcol: round-trip self-check failed")
	ErrUnknownMode         = errors.New("semcol: unknown mode byte")
	ErrBitmapMismatch      = errors.New("semcol: bitmap popcount mismatch")
	ErrDictIndexOutOfRange = errors.New("semcol: dictionary index out of range")
	ErrEnumStringTooLong   = errors.New("semcol: enum dictionary string too long")
	ErrInvalidHeaderSize   = errors.New("semcol: invalid header size")
)

// NoCodecError reports that the registry has no codec registered for type.
type NoCodecError struct {
	Type format.FieldType
}

func (e *NoCodecError) Error() string {
	return fmt.Sprintf("semcol: no codec registered for type %s", e.Type)
}

func (e *NoCodecError) Unwrap() error { return ErrNoCodec }

// NewNoCodec constructs a NoCodecError for the given type.
func NewNoCodec(t format.FieldType) error {
	return &NoCodecError{Type: t}
}

// RoundTripFailedError reports that the per-column self-check mismatch
// during compress detected a divergence between the encoded and decoded
// values for field.
type RoundTripFailedError struct {
	Field string
	Type  format.FieldType
}

func (e *RoundTripFailedError) Error() string {
	return fmt.Sprintf("semcol: round-trip self-check failed for field %q (type %s)", e.Field, e.Type)
}

func (e *RoundTripFailedError) Unwrap() error { return ErrRoundTripFailed }

// NewRoundTripFailed constructs a RoundTripFailedError.
func NewRoundTripFailed(field string, t format.FieldType) error {
	return &RoundTripFailedError{Field: field, Type: t}
}

// TruncatedError reports that the input buffer ended mid-field during decode.
type TruncatedError struct {
	Where string
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("semcol: truncated input while decoding %s", e.Where)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// NewTruncated constructs a TruncatedError.
func NewTruncated(where string) error {
	return &TruncatedError{Where: where}
}

// UnknownModeError reports that a mode byte in an adaptive codec payload was
// not recognized.
type UnknownModeError struct {
	Codec string
	Byte  byte
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("semcol: unknown mode byte 0x%02x for %s codec", e.Byte, e.Codec)
}

func (e *UnknownModeError) Unwrap() error { return ErrUnknownMode }

// NewUnknownMode constructs an UnknownModeError.
func NewUnknownMode(codec string, b byte) error {
	return &UnknownModeError{Codec: codec, Byte: b}
}

// BitmapMismatchError reports that the nullable wrapper's inner codec decoded
// a count different from the validity bitmap's popcount.
type BitmapMismatchError struct {
	Expected int
	Got      int
}

func (e *BitmapMismatchError) Error() string {
	return fmt.Sprintf("semcol: bitmap popcount mismatch: expected %d non-missing values, inner codec decoded %d", e.Expected, e.Got)
}

func (e *BitmapMismatchError) Unwrap() error { return ErrBitmapMismatch }

// NewBitmapMismatch constructs a BitmapMismatchError.
func NewBitmapMismatch(expected, got int) error {
	return &BitmapMismatchError{Expected: expected, Got: got}
}
