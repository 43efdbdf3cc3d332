package cpp

import (
	"github.com/codestub/codestub/internal/codegen/stub"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/typemap"
)

func vector(elem string) string {
	return "vector<" + elem + ">"
}

var rules = typemap.Rules{
	Primitives: map[dsl.Primitive]string{
		dsl.Int:    "int",
		dsl.Long:   "long long",
		dsl.Float:  "float",
		dsl.Double: "double",
		dsl.Bool:   "bool",
		dsl.String: "string",
	},
	Array: vector,
	List:  vector,
	Tree:  func(string) string { return "TreeNode*" },
	Graph: "vector<vector<int>>",
}

var literals = stub.Literals{
	Null:        "return nullptr;",
	Collection:  func(typemap.MappedType) string { return "return {};" },
	Zero:        "return 0;",
	False:       "return false;",
	EmptyString: `return "";`,
	Fallback:    "return {};",
}

var baseline = []string{
	"#include <iostream>",
	"#include <vector>",
	"#include <string>",
	"#include <algorithm>",
}

var importRules = []stub.ImportRule{
	{When: stub.AnyTree, Lines: []string{"#include <memory>"}},
	{When: stub.Uses(dsl.String), Lines: []string{"#include <string>"}},
}

const treeNodeDefinition = `
// Definition for a binary tree node
struct TreeNode {
    %[1]s val;
    TreeNode *left;
    TreeNode *right;
    TreeNode() : val(%[2]s), left(nullptr), right(nullptr) {}
    TreeNode(%[1]s x) : val(x), left(nullptr), right(nullptr) {}
    TreeNode(%[1]s x, TreeNode *left, TreeNode *right) : val(x), left(left), right(right) {}
};
`
