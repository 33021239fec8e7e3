// Package flatten converts nested plain-object records into flat
// dotted-key maps and back.
//
// Arrays are opaque leaves here: a value.KindSeq is never descended into,
// even if it holds objects — array codecs handle their own recursion
// (see package codec's array codecs). Only value.KindMap is recursed into.
package flatten

import (
	"strings"

	"github.com/arloliu/semcol/value"
)

// Flatten walks record depth-first. For each key whose value is a plain
// object (value.KindMap, not Null, not Missing), it prepends
// "parentPath." and recurses; otherwise it emits fullPath -> value as-is,
// including value.Missing and value.Null leaves.
func Flatten(record map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value)
	flattenInto(out, "", record)

	return out
}

func flattenInto(out map[string]value.Value, prefix string, obj map[string]value.Value) {
	for key, v := range obj {
		fullPath := key
		if prefix != "" {
			fullPath = prefix + "." + key
		}

		if nested, ok := v.AsMap(); ok && v.Kind() == value.KindMap {
			flattenInto(out, fullPath, nested)
			continue
		}

		out[fullPath] = v
	}
}

// Unflatten rebuilds nested objects from dotted keys. A value.Missing leaf
// is dropped entirely: it produces no key at all in the reconstructed
// object, which is what distinguishes an absent leaf from an explicit
// Null.
func Unflatten(flat map[string]value.Value) map[string]value.Value {
	root := make(map[string]value.Value)

	for fullPath, v := range flat {
		if v.IsMissing() {
			continue
		}

		parts := strings.Split(fullPath, ".")
		cur := root

		for i, part := range parts {
			if i == len(parts)-1 {
				cur[part] = v
				continue
			}

			next, ok := cur[part]
			var nextMap map[string]value.Value
			if ok {
				nextMap, _ = next.AsMap()
			} else {
				nextMap = make(map[string]value.Value)
				cur[part] = value.Map(nextMap)
			}
			cur = nextMap
		}
	}

	return root
}
