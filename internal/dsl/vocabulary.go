package dsl

// catalog is the set of tokens accepted by the default vocabulary, grouped by
// category in the order they are reported.
var catalog = [...][]string{
	KindPrimitive: {"int", "long", "float", "double", "bool", "string"},
	KindArray:     {"int[]", "long[]", "float[]", "double[]", "bool[]", "string[]"},
	KindList: {
		"List<int>", "List<long>", "List<float>", "List<double>", "List<bool>", "List<string>",
		"List<int[]>", "List<List<int>>",
	},
	KindTree:  {"Tree<int>", "Tree<string>"},
	KindGraph: {"Graph"},
}

// Vocabulary is the closed set of DSL tokens accepted as parameter and return
// types. The zero value accepts exactly the catalog.
type Vocabulary struct {
	// MaxNestingDepth, when positive, additionally accepts any array/list
	// nesting of primitives whose depth does not exceed it. Trees and graphs
	// are never accepted inside another type.
	MaxNestingDepth int
}

// DefaultVocabulary accepts exactly the catalog
var DefaultVocabulary = Vocabulary{}

// Tokens returns every catalog token in canonical order
func (v Vocabulary) Tokens() []string {
	var out []string
	for _, group := range catalog {
		out = append(out, group...)
	}
	return out
}

// TokensOf returns the catalog tokens of one category
func (v Vocabulary) TokensOf(kind Kind) []string {
	if int(kind) < 0 || int(kind) >= len(catalog) {
		return nil
	}
	return append([]string(nil), catalog[kind]...)
}

// Accepts reports whether token belongs to the vocabulary
func (v Vocabulary) Accepts(token string) bool {
	if inCatalog(token) {
		return true
	}
	if v.MaxNestingDepth <= 0 {
		return false
	}

	t, err := Parse(token)
	if err != nil {
		return false
	}
	return v.acceptsNested(t)
}

// Lookup parses token if the vocabulary accepts it
func (v Vocabulary) Lookup(token string) (Type, bool) {
	if !v.Accepts(token) {
		return Type{}, false
	}
	t, err := Parse(token)
	if err != nil {
		return Type{}, false
	}
	return t, true
}

func (v Vocabulary) acceptsNested(t Type) bool {
	if t.Depth() > v.MaxNestingDepth {
		return false
	}
	for cur := t; ; cur = *cur.Elem {
		switch cur.Kind {
		case KindPrimitive:
			return true
		case KindTree, KindGraph:
			return false
		}
	}
}

// Category returns the category of an accepted token
func Category(token string) (Kind, bool) {
	t, err := Parse(token)
	if err != nil {
		return 0, false
	}
	return t.Kind, true
}

func inCatalog(token string) bool {
	for _, group := range catalog {
		for _, tok := range group {
			if tok == token {
				return true
			}
		}
	}
	return false
}
