// Package dsl defines the closed type vocabulary used to describe function
// signatures independently of any target language.
package dsl

import "strings"

// Kind is the category of a DSL type
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindList
	KindTree
	KindGraph
)

// String returns the category name used in API responses
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindList:
		return "list"
	case KindTree:
		return "tree"
	case KindGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// Primitive is one of the scalar DSL types
type Primitive string

const (
	Int    Primitive = "int"
	Long   Primitive = "long"
	Float  Primitive = "float"
	Double Primitive = "double"
	Bool   Primitive = "bool"
	String Primitive = "string"
)

// Primitives lists every primitive in canonical order
var Primitives = []Primitive{Int, Long, Float, Double, Bool, String}

// IsNumeric reports whether the primitive is a number
func (p Primitive) IsNumeric() bool {
	switch p {
	case Int, Long, Float, Double:
		return true
	}
	return false
}

// Type is a parsed DSL type. Values are immutable once constructed.
type Type struct {
	Kind      Kind
	Primitive Primitive // set when Kind == KindPrimitive
	Elem      *Type     // set for arrays, lists and trees
}

// Prim builds a primitive type
func Prim(p Primitive) Type {
	return Type{Kind: KindPrimitive, Primitive: p}
}

// ArrayOf builds T[]
func ArrayOf(elem Type) Type {
	return Type{Kind: KindArray, Elem: &elem}
}

// ListOf builds List<T>
func ListOf(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// TreeOf builds Tree<T>
func TreeOf(elem Type) Type {
	return Type{Kind: KindTree, Elem: &elem}
}

// GraphType builds Graph
func GraphType() Type {
	return Type{Kind: KindGraph}
}

// String renders the canonical DSL token
func (t Type) String() string {
	var sb strings.Builder
	t.render(&sb)
	return sb.String()
}

func (t Type) render(sb *strings.Builder) {
	switch t.Kind {
	case KindPrimitive:
		sb.WriteString(string(t.Primitive))
	case KindArray:
		t.Elem.render(sb)
		sb.WriteString("[]")
	case KindList:
		sb.WriteString("List<")
		t.Elem.render(sb)
		sb.WriteString(">")
	case KindTree:
		sb.WriteString("Tree<")
		t.Elem.render(sb)
		sb.WriteString(">")
	case KindGraph:
		sb.WriteString("Graph")
	}
}

// Depth returns the number of container levels wrapping the innermost type.
// Primitives and Graph have depth 0.
func (t Type) Depth() int {
	if t.Elem == nil {
		return 0
	}
	return 1 + t.Elem.Depth()
}

// Contains reports whether t or any nested element has the given kind
func (t Type) Contains(kind Kind) bool {
	if t.Kind == kind {
		return true
	}
	if t.Elem == nil {
		return false
	}
	return t.Elem.Contains(kind)
}

// UsesPrimitive reports whether p appears anywhere in t
func (t Type) UsesPrimitive(p Primitive) bool {
	if t.Kind == KindPrimitive {
		return t.Primitive == p
	}
	if t.Elem == nil {
		return false
	}
	return t.Elem.UsesPrimitive(p)
}

// IsSequence reports whether t is an array, list or graph
func (t Type) IsSequence() bool {
	return t.Kind == KindArray || t.Kind == KindList || t.Kind == KindGraph
}
