package java

import (
	"strings"
	"testing"

	"github.com/codestub/codestub/internal/codegen/stub"
	"github.com/codestub/codestub/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, sig schema.FunctionSignature) string {
	t.Helper()
	code, err := NewGenerator(stub.Options{}).Generate(sig)
	require.NoError(t, err)
	return string(code)
}

func TestGenerator_NestedLists(t *testing.T) {
	// Test: List<List<int>> boxes its elements and imports java.util once
	result := generate(t, schema.FunctionSignature{
		FunctionName: "mergeKLists",
		Parameters:   []schema.Parameter{{Name: "lists", Type: "List<List<int>>"}},
		Returns:      schema.ReturnSpec{Type: "List<int>"},
	})

	assert.Contains(t, result, "public List<Integer> mergeKLists(List<List<Integer>> lists) {")
	assert.Contains(t, result, "import java.util.*;")
	assert.Equal(t, 1, strings.Count(result, "import java.util.*;"))
	assert.Contains(t, result, "import com.google.gson.reflect.TypeToken;")
	assert.Contains(t, result, "return new ArrayList<>();")
	assert.Contains(t, result, `gson.fromJson(data.get("lists"), new TypeToken<List<List<Integer>>>() {}.getType())`)
	assert.Contains(t, result, "List<Integer> result = solution.mergeKLists(")
}

func TestGenerator_Scalar(t *testing.T) {
	// Test: primitive signature needs no TypeToken import
	result := generate(t, schema.FunctionSignature{
		FunctionName: "fibonacci",
		Parameters:   []schema.Parameter{{Name: "n", Type: "int"}},
		Returns:      schema.ReturnSpec{Type: "int"},
	})

	assert.True(t, strings.HasPrefix(result, "import java.util.*;\nimport com.google.gson.*;\n"))
	assert.NotContains(t, result, "TypeToken")
	assert.Contains(t, result, "public int fibonacci(int n) {")
	assert.Contains(t, result, "        return 0;\n")
	assert.Contains(t, result, `gson.fromJson(data.get("n"), int.class)`)
	assert.Contains(t, result, "public class Main {")
	assert.True(t, strings.HasSuffix(result, "}\n"))
}

func TestGenerator_NativeArrayDefaults(t *testing.T) {
	// Test: arrays and graphs return an empty array literal of their own type
	tests := []struct {
		returns string
		want    string
	}{
		{"int[]", "return new int[]{};"},
		{"string[]", "return new String[]{};"},
		{"Graph", "return new int[][]{};"},
		{"List<int[]>", "return new ArrayList<>();"},
		{"Tree<int>", "return null;"},
		{"bool", "return false;"},
		{"string", `return "";`},
		{"long", "return 0;"},
	}

	for _, tt := range tests {
		t.Run(tt.returns, func(t *testing.T) {
			result := generate(t, schema.FunctionSignature{
				FunctionName: "solve",
				Returns:      schema.ReturnSpec{Type: tt.returns},
			})
			assert.Contains(t, result, tt.want)
		})
	}
}

func TestGenerator_TreeDefinedOnce(t *testing.T) {
	// Test: the TreeNode class is emitted once, before the solution
	result := generate(t, schema.FunctionSignature{
		FunctionName: "lowestCommonAncestor",
		Parameters: []schema.Parameter{
			{Name: "root", Type: "Tree<int>"},
			{Name: "p", Type: "Tree<int>"},
			{Name: "q", Type: "Tree<int>"},
		},
		Returns: schema.ReturnSpec{Type: "Tree<int>"},
	})

	assert.Equal(t, 1, strings.Count(result, "class TreeNode {"))
	assert.Contains(t, result, "    int val;")
	assert.Contains(t, result, "public TreeNode lowestCommonAncestor(TreeNode root, TreeNode p, TreeNode q) {")
	assert.Contains(t, result, `gson.fromJson(data.get("q"), TreeNode.class)`)
	assert.Less(t, strings.Index(result, "class TreeNode {"), strings.Index(result, "class Solution {"))
}

func TestGenerator_StringTree(t *testing.T) {
	// Test: Tree<string> gives the node a String value
	result := generate(t, schema.FunctionSignature{
		FunctionName: "serialize",
		Parameters:   []schema.Parameter{{Name: "root", Type: "Tree<string>"}},
		Returns:      schema.ReturnSpec{Type: "string"},
	})

	assert.Contains(t, result, "    String val;")
	assert.Contains(t, result, "TreeNode(String val) { this.val = val; }")
}

func TestGenerator_ZeroParameters(t *testing.T) {
	// Test: empty parameter list and a single-line call
	result := generate(t, schema.FunctionSignature{
		FunctionName: "f",
		Returns:      schema.ReturnSpec{Type: "int"},
	})

	assert.Contains(t, result, "public int f() {")
	assert.Contains(t, result, "int result = solution.f();")
}

func TestGenerator_MultipleParameters(t *testing.T) {
	// Test: arguments are decoded one per line, comma separated
	result := generate(t, schema.FunctionSignature{
		FunctionName: "twoSum",
		Parameters: []schema.Parameter{
			{Name: "nums", Type: "int[]"},
			{Name: "target", Type: "int"},
		},
		Returns: schema.ReturnSpec{Type: "int[]"},
	})

	assert.Contains(t, result, "public int[] twoSum(int[] nums, int target) {")
	assert.Contains(t, result, `gson.fromJson(data.get("nums"), int[].class),`)
	assert.Contains(t, result, `gson.fromJson(data.get("target"), int.class)`+"\n")
}

func TestGenerator_OmitHarness(t *testing.T) {
	g := NewGenerator(stub.Options{SolutionName: "Answer", OmitHarness: true})
	code, err := g.Generate(schema.FunctionSignature{FunctionName: "f", Returns: schema.ReturnSpec{Type: "bool"}})
	require.NoError(t, err)

	assert.Contains(t, string(code), "class Answer {")
	assert.NotContains(t, string(code), "public class Main")
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator(stub.Options{})
	assert.Equal(t, "java", g.Language())
	assert.Equal(t, ".java", g.FileExtension())
	assert.Equal(t, "List<int[]>", g.Table().Syntax("List<int[]>"))
	assert.Equal(t, "boolean[]", g.Table().Syntax("bool[]"))
	assert.Equal(t, "List<String>", g.Table().Syntax("List<string>"))
}
