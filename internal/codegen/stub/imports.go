package stub

import (
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/schema"
)

// Imports is an insertion-ordered set of import lines
type Imports struct {
	lines []string
	seen  map[string]struct{}
}

// NewImports starts a set with the language baseline
func NewImports(baseline ...string) *Imports {
	imp := &Imports{seen: make(map[string]struct{})}
	imp.Add(baseline...)
	return imp
}

// Add appends lines that are not already present
func (i *Imports) Add(lines ...string) {
	for _, line := range lines {
		if _, ok := i.seen[line]; ok {
			continue
		}
		i.seen[line] = struct{}{}
		i.lines = append(i.lines, line)
	}
}

// Lines returns the import lines in insertion order
func (i *Imports) Lines() []string {
	return append([]string(nil), i.lines...)
}

// Len returns the number of distinct lines
func (i *Imports) Len() int {
	return len(i.lines)
}

// ImportRule adds Lines when any signature type satisfies When
type ImportRule struct {
	When  func(t dsl.Type) bool
	Lines []string
}

// ResolveImports returns the baseline followed by the lines of every rule
// matched by at least one parameter or return type, without duplicates.
func ResolveImports(sig schema.FunctionSignature, baseline []string, rules []ImportRule) []string {
	imp := NewImports(baseline...)
	types := SlotTypes(sig)

	for _, rule := range rules {
		for _, t := range types {
			if rule.When(t) {
				imp.Add(rule.Lines...)
				break
			}
		}
	}

	return imp.Lines()
}

// SlotTypes parses every parameter type followed by the return type.
// Tokens that do not parse are skipped; generation validates beforehand.
func SlotTypes(sig schema.FunctionSignature) []dsl.Type {
	var types []dsl.Type
	for _, token := range sig.Types() {
		t, err := dsl.Parse(token)
		if err != nil {
			continue
		}
		types = append(types, t)
	}
	return types
}

// AnyList matches types containing a List anywhere
func AnyList(t dsl.Type) bool {
	return t.Contains(dsl.KindList)
}

// AnyTree matches types containing a Tree anywhere
func AnyTree(t dsl.Type) bool {
	return t.Contains(dsl.KindTree)
}

// AnySequence matches arrays, lists, graphs and anything nesting them
func AnySequence(t dsl.Type) bool {
	return t.Contains(dsl.KindArray) || t.Contains(dsl.KindList) || t.Contains(dsl.KindGraph)
}

// Uses matches types mentioning primitive p
func Uses(p dsl.Primitive) func(dsl.Type) bool {
	return func(t dsl.Type) bool {
		return t.UsesPrimitive(p)
	}
}
