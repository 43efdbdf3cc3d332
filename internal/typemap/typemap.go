// Package typemap translates DSL types into target-language type spellings.
//
// Each backend describes its language with a Rules value; a Table derives the
// spelling of every vocabulary token from those rules once, recursively, and
// tags each result with Traits so later stages never need to inspect the
// spelled syntax.
package typemap

import (
	"github.com/codestub/codestub/internal/dsl"
)

// Traits classify a mapped type. Several may be set at once.
type Traits uint8

const (
	// Nullable types default to the language's null value
	Nullable Traits = 1 << iota
	// Collection types default to an empty collection
	Collection
	// NativeArray marks fixed-size language arrays (e.g. Java int[])
	NativeArray
	Numeric
	Boolean
	Text
)

// Has reports whether every bit of f is set
func (t Traits) Has(f Traits) bool {
	return t&f == f
}

// MappedType is a DSL type spelled in a target language
type MappedType struct {
	Syntax string
	Traits Traits
}

// Rules describe how a language spells DSL types
type Rules struct {
	// Primitives spells each scalar. A missing primitive is unsupported.
	Primitives map[dsl.Primitive]string

	// Boxed, when set, spells primitives that appear directly as a list
	// element (Java's List<Integer>).
	Boxed map[dsl.Primitive]string

	Array func(elem string) string
	List  func(elem string) string
	Tree  func(elem string) string
	Graph string

	// NativeArrays marks Array and Graph spellings as fixed-size arrays
	NativeArrays bool
}

// Derive spells t according to the rules
func (r Rules) Derive(t dsl.Type) (MappedType, bool) {
	return r.derive(t, false)
}

func (r Rules) derive(t dsl.Type, listElem bool) (MappedType, bool) {
	switch t.Kind {
	case dsl.KindPrimitive:
		syntax, ok := r.Primitives[t.Primitive]
		if listElem && r.Boxed != nil {
			if boxed, found := r.Boxed[t.Primitive]; found {
				syntax, ok = boxed, true
			}
		}
		if !ok {
			return MappedType{}, false
		}
		return MappedType{Syntax: syntax, Traits: primitiveTraits(t.Primitive)}, true

	case dsl.KindArray:
		if r.Array == nil {
			return MappedType{}, false
		}
		elem, ok := r.derive(*t.Elem, false)
		if !ok {
			return MappedType{}, false
		}
		traits := Collection | elem.Traits&Nullable
		if r.NativeArrays {
			traits |= NativeArray
		}
		return MappedType{Syntax: r.Array(elem.Syntax), Traits: traits}, true

	case dsl.KindList:
		if r.List == nil {
			return MappedType{}, false
		}
		elem, ok := r.derive(*t.Elem, true)
		if !ok {
			return MappedType{}, false
		}
		return MappedType{Syntax: r.List(elem.Syntax), Traits: Collection | elem.Traits&Nullable}, true

	case dsl.KindTree:
		if r.Tree == nil {
			return MappedType{}, false
		}
		elem, ok := r.derive(*t.Elem, false)
		if !ok {
			return MappedType{}, false
		}
		return MappedType{Syntax: r.Tree(elem.Syntax), Traits: Nullable}, true

	case dsl.KindGraph:
		if r.Graph == "" {
			return MappedType{}, false
		}
		traits := Collection
		if r.NativeArrays {
			traits |= NativeArray
		}
		return MappedType{Syntax: r.Graph, Traits: traits}, true
	}

	return MappedType{}, false
}

func primitiveTraits(p dsl.Primitive) Traits {
	switch {
	case p.IsNumeric():
		return Numeric
	case p == dsl.Bool:
		return Boolean
	case p == dsl.String:
		return Text
	}
	return 0
}
