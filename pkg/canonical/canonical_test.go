package canonical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reordered struct {
	Zeta  string         `json:"zeta"`
	Alpha map[string]int `json:"alpha"`
	Mid   []any          `json:"mid"`
}

func TestMarshal_SortsKeysRecursively(t *testing.T) {
	v := reordered{
		Zeta:  "z",
		Alpha: map[string]int{"b": 2, "a": 1},
		Mid:   []any{map[string]any{"y": true, "x": nil}, "s"},
	}

	out, err := Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":1,"b":2},"mid":[{"x":null,"y":true},"s"],"zeta":"z"}`, out.String())
}

func TestMarshal_InsertionOrderIndependent(t *testing.T) {
	a := map[string]any{"b": 2, "a": map[string]any{"y": 2, "x": 1}}
	b := map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": 2}

	ca, err := Marshal(a)
	require.NoError(t, err)
	cb, err := Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
}

func TestMarshal_ArraysKeepOrder(t *testing.T) {
	out, err := Marshal([]any{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, `[3,1,2]`, out.String())
}

func TestMarshal_Primitives(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{"plain", `"plain"`},
		{"a&b<c>", `"a&b<c>"`},
		{int64(1700000000), "1700000000"},
		{json.Number("12.50"), "12.50"},
	} {
		out, err := Marshal(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out.String())
	}
}

func TestMarshal_Idempotent(t *testing.T) {
	v := map[string]any{"k": []any{map[string]any{"b": 1, "a": "x"}}}

	first, err := Marshal(v)
	require.NoError(t, err)

	var decoded any
	require.NoError(t, json.Unmarshal(first, &decoded))
	second, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarshal_UnsupportedValue(t *testing.T) {
	_, err := Marshal(map[string]any{"c": make(chan int)})
	require.Error(t, err)
}

func TestMarshalIndent_MatchesCompactTree(t *testing.T) {
	v := map[string]any{"b": []any{}, "a": map[string]any{"d": 1, "c": map[string]any{}}}

	pretty, err := MarshalIndent(v)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"c\": {},\n    \"d\": 1\n  },\n  \"b\": []\n}", string(pretty))

	compact, err := Marshal(v)
	require.NoError(t, err)
	reparsed, err := Marshal(json.RawMessage(pretty))
	require.NoError(t, err)
	assert.Equal(t, compact, reparsed)
}

func TestCanonicalize_ObjectAccess(t *testing.T) {
	tree, err := Canonicalize(map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)

	obj, ok := tree.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, obj.Keys)
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, json.Number("2"), v)
}
