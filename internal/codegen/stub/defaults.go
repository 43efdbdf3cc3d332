// Package stub holds the pieces shared by every backend: default return
// synthesis, import resolution and auxiliary tree-type detection.
package stub

import (
	"github.com/codestub/codestub/internal/typemap"
)

// Literals spell the default return statements of one language
type Literals struct {
	Null        string
	Collection  func(mapped typemap.MappedType) string
	Zero        string
	False       string
	EmptyString string
	Fallback    string
}

// DefaultReturn picks the stub's return statement from the mapped type's
// traits. Precedence is fixed: nullable, collection, numeric, boolean, text,
// then the fallback. A nullable collection therefore returns null.
func DefaultReturn(mapped typemap.MappedType, lits Literals) string {
	switch t := mapped.Traits; {
	case t.Has(typemap.Nullable):
		return lits.Null
	case t.Has(typemap.Collection):
		if lits.Collection == nil {
			return lits.Fallback
		}
		return lits.Collection(mapped)
	case t.Has(typemap.Numeric):
		return lits.Zero
	case t.Has(typemap.Boolean):
		return lits.False
	case t.Has(typemap.Text):
		return lits.EmptyString
	default:
		return lits.Fallback
	}
}
