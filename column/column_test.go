package column

import (
	"testing"

	"github.com/arloliu/semcol/value"
	"github.com/stretchr/testify/require"
)

func TestPivot_ScenarioD(t *testing.T) {
	records := []map[string]value.Value{
		{"a": value.Number(1), "b": value.Null},
		{"a": value.Number(2)},
	}

	keys, columns := Pivot(records)
	require.Equal(t, []string{"a", "b"}, keys)
	require.Equal(t, []value.Value{value.Number(1), value.Number(2)}, columns["a"])
	require.Equal(t, []value.Value{value.Null, value.Missing}, columns["b"])
}

func TestUnpivot_RoundTrip(t *testing.T) {
	records := []map[string]value.Value{
		{"a": value.Number(1), "b": value.Null},
		{"a": value.Number(2)},
	}

	keys, columns := Pivot(records)
	out := Unpivot(keys, columns, len(records))

	require.Len(t, out, 2)
	require.Equal(t, value.Number(1), out[0]["a"])
	require.Equal(t, value.Null, out[0]["b"])
	require.Equal(t, value.Number(2), out[1]["a"])
	_, hasB := out[1]["b"]
	require.False(t, hasB)
}

func TestPivot_NestedKeysFlattened(t *testing.T) {
	records := []map[string]value.Value{
		{"user": value.Map(map[string]value.Value{"name": value.String("ada")})},
	}

	keys, columns := Pivot(records)
	require.Equal(t, []string{"user.name"}, keys)
	require.Equal(t, []value.Value{value.String("ada")}, columns["user.name"])
}

func TestSortedKeys_Union(t *testing.T) {
	records := []map[string]value.Value{
		{"z": value.Null, "a": value.Null},
		{"m": value.Null},
	}

	keys := SortedKeys(records)
	require.Equal(t, []string{"a", "m", "z"}, keys)
}
