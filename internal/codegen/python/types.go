package python

import (
	"github.com/codestub/codestub/internal/codegen/stub"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/typemap"
)

func typingList(elem string) string {
	return "List[" + elem + "]"
}

var rules = typemap.Rules{
	Primitives: map[dsl.Primitive]string{
		dsl.Int:    "int",
		dsl.Long:   "int",
		dsl.Float:  "float",
		dsl.Double: "float",
		dsl.Bool:   "bool",
		dsl.String: "str",
	},
	Array: typingList,
	List:  typingList,
	Tree:  func(string) string { return "Optional[TreeNode]" },
	Graph: "List[List[int]]",
}

var literals = stub.Literals{
	Null:        "return None",
	Collection:  func(typemap.MappedType) string { return "return []" },
	Zero:        "return 0",
	False:       "return False",
	EmptyString: `return ""`,
	Fallback:    "pass",
}

var baseline = []string{"import json", "import sys"}

// typing names needed by the annotations, in import order
var typingRules = []struct {
	name string
	when func(dsl.Type) bool
}{
	{"List", stub.AnySequence},
	{"Optional", stub.AnyTree},
}

const treeNodeDefinition = `
# Definition for a binary tree node
class TreeNode:
    def __init__(self, val=%s, left=None, right=None):
        self.val = val
        self.left = left
        self.right = right
`

const treeCodecs = `
def _decode_tree(value):
    if value is None:
        return None
    if isinstance(value, dict):
        return TreeNode(value.get("val"), _decode_tree(value.get("left")), _decode_tree(value.get("right")))
    return value


def _encode(value):
    if isinstance(value, TreeNode):
        return {"val": value.val, "left": _encode(value.left), "right": _encode(value.right)}
    return str(value)
`
