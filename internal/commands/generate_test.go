package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codestub/codestub/internal/schema"
)

// Test plan for generate:
// 1. A request file renders to stdout or to --out
// 2. --language overrides the request and --no-harness drops the entry point
// 3. Invalid requests fail without output
// 4. A schema renders every problem in every selected language
// 5. Schema failures are collected while the rest is still written
// 6. Flag combinations are checked

func TestGenerate_RequestToStdout(t *testing.T) {
	ctrl, out := newTestController(t)
	input := writeRequest(t, t.TempDir(), "fib.json", fibonacciRequest("python"))

	require.NoError(t, ctrl.Generate(context.Background(), GenerateOptions{Input: input}))

	assert.Contains(t, out.String(), "def fibonacci(self, n: int) -> int:")
	assert.Contains(t, out.String(), `if __name__ == "__main__":`)
}

func TestGenerate_RequestToFile(t *testing.T) {
	// Test: Language override, YAML input and harness removal
	ctrl, out := newTestController(t)
	dir := t.TempDir()
	input := writeRequest(t, dir, "fib.yaml", fibonacciRequest("python"))
	target := filepath.Join(dir, "nested", "Main.java")

	err := ctrl.Generate(context.Background(), GenerateOptions{
		Input:     input,
		Language:  "java",
		Out:       target,
		NoHarness: true,
	})
	require.NoError(t, err)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "public int fibonacci(int n) {")
	assert.NotContains(t, string(data), "public class Main")
}

func TestGenerate_InvalidRequest(t *testing.T) {
	ctrl, out := newTestController(t)
	req := fibonacciRequest("rust")
	input := writeRequest(t, t.TempDir(), "fib.json", req)

	err := ctrl.Generate(context.Background(), GenerateOptions{Input: input})
	require.Error(t, err)

	var verr *schema.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, out.String())
}

const problemsSchema = `
"""Fibonacci"""
problem fib {
  fibonacci(n: Int!): Int!
}

problem two-sum {
  twoSum(nums: [Int!]!, target: Int!): [Int!]!
}
`

func TestGenerate_Schema(t *testing.T) {
	ctrl, _ := newTestController(t)
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "problems.graphql")
	require.NoError(t, os.WriteFile(schemaPath, []byte(problemsSchema), 0644))
	outDir := filepath.Join(dir, "out")

	cfg, err := ctrl.loadConfig()
	require.NoError(t, err)

	written, err := ctrl.generateFromSchema(ctrl.newPipeline(cfg, false), GenerateOptions{
		Schema:   schemaPath,
		Language: "python, cpp",
		OutDir:   outDir,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(outDir, "fib.py"),
		filepath.Join(outDir, "fib.cpp"),
		filepath.Join(outDir, "two-sum.py"),
		filepath.Join(outDir, "two-sum.cpp"),
	}, written)

	data, err := os.ReadFile(filepath.Join(outDir, "two-sum.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "vector<int> twoSum(vector<int> nums, int target) {")
}

func TestGenerate_SchemaAllLanguages(t *testing.T) {
	// Test: Without --language every backend renders
	ctrl, _ := newTestController(t)
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "fib.gql")
	require.NoError(t, os.WriteFile(schemaPath, []byte("problem fib {\n  fibonacci(n: Int!): Int!\n}"), 0644))

	err := ctrl.Generate(context.Background(), GenerateOptions{Schema: schemaPath, OutDir: dir})
	require.NoError(t, err)

	for _, name := range []string{"fib.cpp", "fib.java", "fib.js", "fib.py"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestGenerate_SchemaPartialFailure(t *testing.T) {
	// Test: An unsupported type fails its problem only
	ctrl, _ := newTestController(t)
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "problems.graphql")
	content := problemsSchema + "\nproblem odd {\n  solve(w: Widget): Int\n}\n"
	require.NoError(t, os.WriteFile(schemaPath, []byte(content), 0644))

	err := ctrl.Generate(context.Background(), GenerateOptions{
		Schema:   schemaPath,
		Language: "javascript",
		OutDir:   dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 templates failed")
	assert.Contains(t, err.Error(), "odd (javascript)")
	assert.FileExists(t, filepath.Join(dir, "fib.js"))
	assert.FileExists(t, filepath.Join(dir, "two-sum.js"))
	assert.NoFileExists(t, filepath.Join(dir, "odd.js"))
}

func TestGenerate_Flags(t *testing.T) {
	ctrl, _ := newTestController(t)

	err := ctrl.Generate(context.Background(), GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--input")

	err = ctrl.Generate(context.Background(), GenerateOptions{Input: "a.json", Schema: "b.graphql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"java", "python"}, splitLanguages(" java, ,python "))
	assert.Nil(t, splitLanguages(" , "))
}
