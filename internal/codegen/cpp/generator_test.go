package cpp

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
	// Test: List<List<int>> becomes a nested vector and <vector> is included
	result := generate(t, schema.FunctionSignature{
		FunctionName: "mergeKLists",
		Parameters:   []schema.Parameter{{Name: "lists", Type: "List<List<int>>"}},
		Returns:      schema.ReturnSpec{Type: "int[]"},
	})

	assert.Contains(t, result, "vector<int> mergeKLists(vector<vector<int>> lists) {")
	assert.Contains(t, result, "#include <vector>")
	assert.Contains(t, result, "return {};")
	assert.Contains(t, result, "using namespace std;")
	assert.Contains(t, result, "class Solution {\npublic:\n")
	assert.Contains(t, result, "\n};\n")
}

func TestGenerator_IncludesDeduplicated(t *testing.T) {
	// Test: string types do not repeat the baseline <string> include
	result := generate(t, schema.FunctionSignature{
		FunctionName: "longestCommonPrefix",
		Parameters:   []schema.Parameter{{Name: "strs", Type: "string[]"}},
		Returns:      schema.ReturnSpec{Type: "string"},
	})

	assert.Equal(t, 1, strings.Count(result, "#include <string>"))
	assert.NotContains(t, result, "#include <memory>")
	assert.Contains(t, result, `return "";`)
}

func TestGenerator_TreeDefinedOnce(t *testing.T) {
	// Test: a tree signature adds <memory> and one TreeNode struct
	result := generate(t, schema.FunctionSignature{
		FunctionName: "lowestCommonAncestor",
		Parameters: []schema.Parameter{
			{Name: "root", Type: "Tree<int>"},
			{Name: "p", Type: "Tree<int>"},
			{Name: "q", Type: "Tree<int>"},
		},
		Returns: schema.ReturnSpec{Type: "Tree<int>"},
	})

	assert.Equal(t, 1, strings.Count(result, "#include <memory>"))
	assert.Equal(t, 1, strings.Count(result, "struct TreeNode {"))
	assert.Contains(t, result, "TreeNode() : val(0), left(nullptr), right(nullptr) {}")
	assert.Contains(t, result, "TreeNode* lowestCommonAncestor(TreeNode* root, TreeNode* p, TreeNode* q) {")
	assert.Contains(t, result, "return nullptr;")
	assert.Less(t, strings.Index(result, "struct TreeNode {"), strings.Index(result, "class Solution {"))
}

func TestGenerator_StringTree(t *testing.T) {
	// Test: Tree<string> value-initializes a string field
	result := generate(t, schema.FunctionSignature{
		FunctionName: "serialize",
		Parameters:   []schema.Parameter{{Name: "root", Type: "Tree<string>"}},
		Returns:      schema.ReturnSpec{Type: "bool"},
	})

	assert.Contains(t, result, "    string val;")
	assert.Contains(t, result, "TreeNode() : val(), left(nullptr), right(nullptr) {}")
	assert.Contains(t, result, "return false;")
}

func TestGenerator_HarnessSkeleton(t *testing.T) {
	// Test: the harness reads stdin and documents each parameter
	result := generate(t, schema.FunctionSignature{
		FunctionName: "twoSum",
		Parameters: []schema.Parameter{
			{Name: "nums", Type: "int[]"},
			{Name: "target", Type: "long"},
		},
		Returns: schema.ReturnSpec{Type: "int[]"},
	})

	assert.Contains(t, result, "int main() {")
	assert.Contains(t, result, "while (getline(cin, line)) {")
	assert.Contains(t, result, `//   vector<int> nums = /* input["nums"] */;`)
	assert.Contains(t, result, `//   long long target = /* input["target"] */;`)
	assert.Contains(t, result, "//   auto result = solution.twoSum(nums, target);")
	assert.True(t, strings.HasSuffix(result, "    return 0;\n}\n"))
}

func TestGenerator_ZeroParameters(t *testing.T) {
	result := generate(t, schema.FunctionSignature{
		FunctionName: "f",
		Returns:      schema.ReturnSpec{Type: "double"},
	})

	assert.Contains(t, result, "double f() {")
	assert.Contains(t, result, "return 0;")
}

func TestGenerator_OmitHarness(t *testing.T) {
	g := NewGenerator(stub.Options{OmitHarness: true})
	code, err := g.Generate(schema.FunctionSignature{FunctionName: "f", Returns: schema.ReturnSpec{Type: "Graph"}})
	require.NoError(t, err)

	assert.NotContains(t, string(code), "int main()")
	assert.Contains(t, string(code), "vector<vector<int>> f() {")
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator(stub.Options{})
	assert.Equal(t, "cpp", g.Language())
	assert.Equal(t, ".cpp", g.FileExtension())
	assert.Equal(t, "vector<long long>", g.Table().Syntax("List<long>"))
}
