package javascript

import (
	"github.com/codestub/codestub/internal/codegen/stub"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/typemap"
)

func array(elem string) string {
	return elem + "[]"
}

// spellings double as JSDoc type expressions
var rules = typemap.Rules{
	Primitives: map[dsl.Primitive]string{
		dsl.Int:    "number",
		dsl.Long:   "number",
		dsl.Float:  "number",
		dsl.Double: "number",
		dsl.Bool:   "boolean",
		dsl.String: "string",
	},
	Array: array,
	List:  array,
	Tree:  func(string) string { return "TreeNode" },
	Graph: "number[][]",
}

var literals = stub.Literals{
	Null:        "return null;",
	Collection:  func(typemap.MappedType) string { return "return [];" },
	Zero:        "return 0;",
	False:       "return false;",
	EmptyString: `return "";`,
	Fallback:    "return null;",
}

var baseline = []string{`const fs = require("fs");`}

const treeNodeDefinition = `
// Definition for a binary tree node
function TreeNode(val, left, right) {
    this.val = (val === undefined ? %s : val);
    this.left = (left === undefined ? null : left);
    this.right = (right === undefined ? null : right);
}
`
