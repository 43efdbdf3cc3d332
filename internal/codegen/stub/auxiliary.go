package stub

import (
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/schema"
)

// NeedsAuxiliaryType reports whether any parameter or the return value is a
// tree, in which case the backend must emit its tree node definition once.
func NeedsAuxiliaryType(params []schema.Parameter, returns schema.ReturnSpec) bool {
	_, ok := TreeElement(params, returns)
	return ok
}

// TreeElement returns the element type of the first tree-typed slot. Backends
// with typed fields use it for the node's value field.
func TreeElement(params []schema.Parameter, returns schema.ReturnSpec) (dsl.Type, bool) {
	tokens := make([]string, 0, len(params)+1)
	for _, p := range params {
		tokens = append(tokens, p.Type)
	}
	tokens = append(tokens, returns.Type)

	for _, token := range tokens {
		t, err := dsl.Parse(token)
		if err != nil {
			continue
		}
		if elem, ok := findTree(t); ok {
			return elem, true
		}
	}
	return dsl.Type{}, false
}

func findTree(t dsl.Type) (dsl.Type, bool) {
	if t.Kind == dsl.KindTree {
		return *t.Elem, true
	}
	if t.Elem == nil {
		return dsl.Type{}, false
	}
	return findTree(*t.Elem)
}
