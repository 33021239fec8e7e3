// Package profiler infers a logical format.FieldType for a column of
// value.Value elements.
//
// The result shape is deliberately richer than the bare type tag — it also
// records nullability and (for the ENUM path) the distinct-value count —
// mirroring the Field{Type, Nullable, Missing, Unique} shape used by the
// pack's chop-dbhi-sql-importer profiler, even though only the bare
// FieldType tag is part of the wire format; the rest is diagnostic only
// (package compressor logs HasNull; DistinctCount is not logged).
package profiler

import (
	"regexp"
	"time"

	"github.com/arloliu/semcol/format"
	"github.com/arloliu/semcol/value"
)

// EnumMaxCardinality is the maximum distinct-value count for a
// string column to be classified ENUM rather than STRING.
const EnumMaxCardinality = 8

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// timestampLayouts are tried in order; the first that parses the whole
// string wins. Fractional seconds of any precision are accepted here (the
// timestamp codec narrows them to milliseconds); a string matching none of
// these layouts, such as one with a timezone shorthand, is not recognized
// as a TIMESTAMP and falls through to STRING or ENUM instead.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Result is the profiler's full output for a column.
type Result struct {
	Type          format.FieldType
	HasNull       bool
	DistinctCount int // only meaningful when Type == format.ENUM
}

// Profile inspects the non-null values in the column (MISSING entries must
// already be filtered by the caller; Null entries are tolerated and
// skipped) and returns a tag by the first matching rule, in priority
// order:
//
//  1. all strings matching the canonical UUID pattern -> UUID
//  2. all strings parseable as ISO-8601             -> TIMESTAMP
//  3. all strings, distinct count <= EnumMaxCardinality -> ENUM
//  4. all booleans                                   -> BOOLEAN
//  5. all numbers                                     -> NUMBER
//  6. all sequences of plain objects (or null)        -> ARRAY
//  7. all sequences of non-object items                -> ARRAY_PRIMITIVE
//  8. otherwise, or if the column is empty/all-null    -> STRING
func Profile(values []value.Value) Result {
	hasNull := false
	nonNull := make([]value.Value, 0, len(values))
	for _, v := range values {
		if v.IsNull() {
			hasNull = true
			continue
		}
		nonNull = append(nonNull, v)
	}

	if len(nonNull) == 0 {
		return Result{Type: format.STRING, HasNull: hasNull}
	}

	if allMatch(nonNull, isUUIDString) {
		return Result{Type: format.UUID, HasNull: hasNull}
	}

	if allMatch(nonNull, isTimestampString) {
		return Result{Type: format.TIMESTAMP, HasNull: hasNull}
	}

	if allMatch(nonNull, isString) {
		distinct := distinctCount(nonNull)
		if distinct <= EnumMaxCardinality {
			return Result{Type: format.ENUM, HasNull: hasNull, DistinctCount: distinct}
		}
	}

	if allMatch(nonNull, isBool) {
		return Result{Type: format.BOOLEAN, HasNull: hasNull}
	}

	if allMatch(nonNull, isNumber) {
		return Result{Type: format.NUMBER, HasNull: hasNull}
	}

	if allMatch(nonNull, isSeqOfObjects) {
		return Result{Type: format.ARRAY, HasNull: hasNull}
	}

	if allMatch(nonNull, isSeqOfNonObjects) {
		return Result{Type: format.ARRAY_PRIMITIVE, HasNull: hasNull}
	}

	return Result{Type: format.STRING, HasNull: hasNull}
}

func allMatch(values []value.Value, pred func(value.Value) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}

	return true
}

func isString(v value.Value) bool { return v.Kind() == value.KindString }
func isBool(v value.Value) bool   { return v.Kind() == value.KindBool }
func isNumber(v value.Value) bool { return v.IsNumber() }

func isUUIDString(v value.Value) bool {
	s, ok := v.AsString()

	return ok && uuidPattern.MatchString(s)
}

func isTimestampString(v value.Value) bool {
	s, ok := v.AsString()
	if !ok {
		return false
	}

	_, ok = parseTimestamp(s)

	return ok
}

// parseTimestamp tries each recognized ISO-8601 layout in turn.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func isSeqOfObjects(v value.Value) bool {
	seq, ok := v.AsSeq()
	if !ok {
		return false
	}

	for _, item := range seq {
		if item.IsNull() || item.IsMissing() {
			continue
		}
		if item.Kind() != value.KindMap {
			return false
		}
	}

	return true
}

func isSeqOfNonObjects(v value.Value) bool {
	seq, ok := v.AsSeq()
	if !ok {
		return false
	}

	for _, item := range seq {
		if item.Kind() == value.KindMap {
			return false
		}
	}

	return true
}

func distinctCount(values []value.Value) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		s, _ := v.AsString()
		seen[s] = struct{}{}
	}

	return len(seen)
}

// ParseTimestamp exposes the profiler's ISO-8601 parsing to the timestamp
// codec, so both share exactly one accepted-layouts list.
func ParseTimestamp(s string) (time.Time, bool) {
	return parseTimestamp(s)
}
