package typemap

import (
	"github.com/codestub/codestub/internal/dsl"
)

// Table maps DSL tokens to one language's spellings. It is built once and
// only read afterwards.
type Table struct {
	language string
	rules    Rules
	vocab    dsl.Vocabulary
	tokens   []string
	entries  map[string]MappedType
}

// NewTable derives the spelling of every vocabulary catalog token. Tokens the
// rules cannot spell are left out of the table and are therefore unsupported
// for this language.
func NewTable(language string, rules Rules, vocab dsl.Vocabulary) *Table {
	t := &Table{
		language: language,
		rules:    rules,
		vocab:    vocab,
		entries:  make(map[string]MappedType),
	}

	for _, token := range vocab.Tokens() {
		typ, err := dsl.Parse(token)
		if err != nil {
			continue
		}
		mapped, ok := rules.Derive(typ)
		if !ok {
			continue
		}
		t.tokens = append(t.tokens, token)
		t.entries[token] = mapped
	}

	return t
}

// Language returns the language this table spells for
func (t *Table) Language() string {
	return t.language
}

// Lookup returns the mapped type for token if it is supported
func (t *Table) Lookup(token string) (MappedType, bool) {
	if mapped, ok := t.entries[token]; ok {
		return mapped, true
	}

	// Nested tokens beyond the catalog are derived on demand
	typ, ok := t.vocab.Lookup(token)
	if !ok {
		return MappedType{}, false
	}
	return t.rules.Derive(typ)
}

// Supported reports whether token is in this language's table
func (t *Table) Supported(token string) bool {
	_, ok := t.Lookup(token)
	return ok
}

// Map returns the mapped type for token. Unsupported tokens pass through
// unchanged with no traits; callers validate before generating.
func (t *Table) Map(token string) MappedType {
	if mapped, ok := t.Lookup(token); ok {
		return mapped
	}
	return MappedType{Syntax: token}
}

// Syntax is Map(token).Syntax
func (t *Table) Syntax(token string) string {
	return t.Map(token).Syntax
}

// Tokens returns the catalog tokens in the table in canonical order
func (t *Table) Tokens() []string {
	return append([]string(nil), t.tokens...)
}

// Entries returns a copy of the catalog mapping token -> syntax
func (t *Table) Entries() map[string]string {
	out := make(map[string]string, len(t.entries))
	for token, mapped := range t.entries {
		out[token] = mapped.Syntax
	}
	return out
}
