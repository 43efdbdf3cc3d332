package dsl

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test plan:
// 1. Every catalog token parses and renders back to itself
// 2. Malformed tokens are rejected with ErrInvalidType
// 3. Depth, Contains and UsesPrimitive walk nested types
// 4. The default vocabulary accepts only the catalog
// 5. MaxNestingDepth opens array/list nesting but never nested trees/graphs

func TestParse_RoundTripsCatalog(t *testing.T) {
	for _, token := range DefaultVocabulary.Tokens() {
		t.Run(token, func(t *testing.T) {
			typ, err := Parse(token)
			require.NoError(t, err)
			assert.Equal(t, token, typ.String())
		})
	}
}

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		token string
		want  Type
	}{
		{"int", Prim(Int)},
		{"string[]", ArrayOf(Prim(String))},
		{"List<int[]>", ListOf(ArrayOf(Prim(Int)))},
		{"List<List<int>>", ListOf(ListOf(Prim(Int)))},
		{"Tree<string>", TreeOf(Prim(String))},
		{"Graph", GraphType()},
		{"List<int>[]", ArrayOf(ListOf(Prim(Int)))},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, token := range []string{"", "NotAType", "Int", "List<int", "List< int>", "Tree<>", "[]", "map<int,int>", "graph"} {
		t.Run(token, func(t *testing.T) {
			_, err := Parse(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidType))
		})
	}
}

func TestType_Walkers(t *testing.T) {
	typ := MustParse("List<List<int>>")
	assert.Equal(t, 2, typ.Depth())
	assert.True(t, typ.Contains(KindList))
	assert.False(t, typ.Contains(KindTree))
	assert.True(t, typ.UsesPrimitive(Int))
	assert.False(t, typ.UsesPrimitive(String))
	assert.True(t, typ.IsSequence())

	tree := MustParse("Tree<string>")
	assert.True(t, tree.Contains(KindTree))
	assert.True(t, tree.UsesPrimitive(String))
	assert.False(t, tree.IsSequence())

	assert.Equal(t, 0, GraphType().Depth())
	assert.True(t, GraphType().IsSequence())
}

func TestVocabulary_Default(t *testing.T) {
	v := DefaultVocabulary

	assert.Len(t, v.Tokens(), 23)
	assert.True(t, v.Accepts("List<List<int>>"))
	assert.True(t, v.Accepts("Tree<int>"))
	assert.False(t, v.Accepts("List<List<string>>"))
	assert.False(t, v.Accepts("NotAType"))
	assert.False(t, v.Accepts("Tree<long>"))

	assert.Equal(t, []string{"Tree<int>", "Tree<string>"}, v.TokensOf(KindTree))
	assert.Nil(t, v.TokensOf(Kind(42)))
}

func TestVocabulary_NestingDepth(t *testing.T) {
	v := Vocabulary{MaxNestingDepth: 3}

	assert.True(t, v.Accepts("List<List<string>>"))
	assert.True(t, v.Accepts("List<List<List<double>>>"))
	assert.True(t, v.Accepts("bool[][]"))
	assert.False(t, v.Accepts("List<List<List<List<int>>>>"))
	assert.False(t, v.Accepts("List<Tree<int>>"))
	assert.False(t, v.Accepts("List<Graph>"))
	assert.False(t, v.Accepts("Tree<List<int>>"))

	typ, ok := v.Lookup("List<List<string>>")
	require.True(t, ok)
	assert.Equal(t, ListOf(ListOf(Prim(String))), typ)

	_, ok = v.Lookup("List<Graph>")
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	kind, ok := Category("Graph")
	require.True(t, ok)
	assert.Equal(t, KindGraph, kind)
	assert.Equal(t, "graph", kind.String())

	_, ok = Category("nope")
	assert.False(t, ok)
}
