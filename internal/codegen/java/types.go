package java

import (
	"github.com/codestub/codestub/internal/codegen/stub"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/typemap"
)

var rules = typemap.Rules{
	Primitives: map[dsl.Primitive]string{
		dsl.Int:    "int",
		dsl.Long:   "long",
		dsl.Float:  "float",
		dsl.Double: "double",
		dsl.Bool:   "boolean",
		dsl.String: "String",
	},
	// generics cannot hold primitives
	Boxed: map[dsl.Primitive]string{
		dsl.Int:    "Integer",
		dsl.Long:   "Long",
		dsl.Float:  "Float",
		dsl.Double: "Double",
		dsl.Bool:   "Boolean",
	},
	Array:        func(elem string) string { return elem + "[]" },
	List:         func(elem string) string { return "List<" + elem + ">" },
	Tree:         func(string) string { return "TreeNode" },
	Graph:        "int[][]",
	NativeArrays: true,
}

var literals = stub.Literals{
	Null:        "return null;",
	Collection:  emptyCollection,
	Zero:        "return 0;",
	False:       "return false;",
	EmptyString: `return "";`,
	Fallback:    "return null;",
}

func emptyCollection(mapped typemap.MappedType) string {
	if mapped.Traits.Has(typemap.NativeArray) {
		return "return new " + mapped.Syntax + "{};"
	}
	return "return new ArrayList<>();"
}

var baseline = []string{
	"import java.util.*;",
	"import com.google.gson.*;",
}

var importRules = []stub.ImportRule{
	{When: stub.AnyList, Lines: []string{"import java.util.*;", "import com.google.gson.reflect.TypeToken;"}},
}

const treeNodeDefinition = `
// Definition for a binary tree node
class TreeNode {
    %[1]s val;
    TreeNode left;
    TreeNode right;
    TreeNode() {}
    TreeNode(%[1]s val) { this.val = val; }
    TreeNode(%[1]s val, TreeNode left, TreeNode right) {
        this.val = val;
        this.left = left;
        this.right = right;
    }
}
`

const inputReader = `
Scanner scanner = new Scanner(System.in);
StringBuilder input = new StringBuilder();
while (scanner.hasNextLine()) {
    input.append(scanner.nextLine());
}
`
