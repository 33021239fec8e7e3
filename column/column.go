// Package column pivots a batch of flattened records into per-key value
// columns, the shape every codec and the header operate on.
package column

import (
	"sort"

	"github.com/arloliu/semcol/flatten"
	"github.com/arloliu/semcol/value"
)

// SortedKeys returns the union of keys across records, sorted
// lexicographically. This fixes column order on the wire.
func SortedKeys(records []map[string]value.Value) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Backfill assigns value.Missing to any key absent from a record, for
// every key in keys, returning one map per input record with every key
// present.
func Backfill(records []map[string]value.Value, keys []string) []map[string]value.Value {
	out := make([]map[string]value.Value, len(records))
	for i, r := range records {
		full := make(map[string]value.Value, len(keys))
		for _, k := range keys {
			if v, ok := r[k]; ok {
				full[k] = v
			} else {
				full[k] = value.Missing
			}
		}
		out[i] = full
	}

	return out
}

// Pivot flattens every record, backfills MISSING for any flattened key
// absent from a given record, and pivots the result into one column per
// key, in sorted key order. It implements steps 2-4 of the compressor's
// prepare phase.
func Pivot(records []map[string]value.Value) (keys []string, columns map[string][]value.Value) {
	flat := make([]map[string]value.Value, len(records))
	for i, r := range records {
		flat[i] = flatten.Flatten(r)
	}

	keys = SortedKeys(flat)
	backfilled := Backfill(flat, keys)

	columns = make(map[string][]value.Value, len(keys))
	for _, k := range keys {
		col := make([]value.Value, len(backfilled))
		for i, r := range backfilled {
			col[i] = r[k]
		}
		columns[k] = col
	}

	return keys, columns
}

// Unpivot is the inverse of Pivot: given the sorted key order and each
// key's decoded column (all of equal length, the row count), it
// synthesizes one record per row index by reading every column, dropping
// any value.Missing entry, and running the inverse flattener.
func Unpivot(keys []string, columns map[string][]value.Value, rowCount int) []map[string]value.Value {
	out := make([]map[string]value.Value, rowCount)
	for i := 0; i < rowCount; i++ {
		flat := make(map[string]value.Value, len(keys))
		for _, k := range keys {
			flat[k] = columns[k][i]
		}
		out[i] = flatten.Unflatten(flat)
	}

	return out
}
