package dsl

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidType is returned when a token is not well-formed DSL
var ErrInvalidType = errors.New("invalid DSL type")

const (
	listPrefix  = "List<"
	treePrefix  = "Tree<"
	arraySuffix = "[]"
	graphToken  = "Graph"
)

// Parse parses a DSL token such as "int", "string[]", "List<List<int>>" or
// "Tree<int>". Only canonical spellings are accepted: no whitespace, exact
// case. Parse checks grammar only; membership in a Vocabulary is separate.
func Parse(token string) (Type, error) {
	t, err := parse(token)
	if err != nil {
		return Type{}, errors.Wrapf(err, "parse %q", token)
	}
	return t, nil
}

// MustParse is Parse for tokens known to be valid. It panics otherwise.
func MustParse(token string) Type {
	t, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return t
}

func parse(s string) (Type, error) {
	if s == "" {
		return Type{}, errors.Mark(errors.New("empty type"), ErrInvalidType)
	}

	if s == graphToken {
		return GraphType(), nil
	}

	if strings.HasSuffix(s, arraySuffix) {
		elem, err := parse(strings.TrimSuffix(s, arraySuffix))
		if err != nil {
			return Type{}, err
		}
		return ArrayOf(elem), nil
	}

	if strings.HasPrefix(s, listPrefix) && strings.HasSuffix(s, ">") {
		elem, err := parse(s[len(listPrefix) : len(s)-1])
		if err != nil {
			return Type{}, err
		}
		return ListOf(elem), nil
	}

	if strings.HasPrefix(s, treePrefix) && strings.HasSuffix(s, ">") {
		elem, err := parse(s[len(treePrefix) : len(s)-1])
		if err != nil {
			return Type{}, err
		}
		return TreeOf(elem), nil
	}

	for _, p := range Primitives {
		if s == string(p) {
			return Prim(p), nil
		}
	}

	return Type{}, errors.Mark(errors.Newf("unknown type %q", s), ErrInvalidType)
}
