package writer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_BasicWriting(t *testing.T) {
	// Test: Basic write operations
	w := NewWriter("    ", "//")

	w.Write("hello")
	w.Write(" world")

	assert.Equal(t, "hello world", string(w.Bytes()))
}

func TestWriter_Indentation(t *testing.T) {
	// Test: Nested indentation with four-space indent
	w := NewWriter("    ", "//")

	w.WriteLine("class Solution {")
	w.Indent()
	w.WriteLine("public int f() {")
	w.Indent()
	w.WriteLine("return 0;")
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")

	expected := "class Solution {\n    public int f() {\n        return 0;\n    }\n}\n"
	assert.Equal(t, expected, string(w.Bytes()))
}

func TestWriter_BlankLine(t *testing.T) {
	// Test: BlankLine never stacks blank lines
	w := NewWriter("\t", "#")

	w.WriteLine("line1")
	w.BlankLine()
	w.BlankLine()
	w.WriteLine("line2")

	lines := strings.Split(string(w.Bytes()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"line1", "", "line2", ""}, lines)
}

func TestWriter_BlankLineOnEmpty(t *testing.T) {
	// Test: BlankLine on empty output writes nothing
	w := NewWriter("\t", "#")
	w.BlankLine()
	assert.Equal(t, "", string(w.Bytes()))
}

func TestWriter_WriteBlock(t *testing.T) {
	// Test: WriteBlock with and without a closer
	w := NewWriter("    ", "#")

	w.WriteBlock("class Solution:", "", func() {
		w.WriteLine("pass")
	})
	w.WriteBlock("int main() {", "}", func() {
		w.WriteLine("return 0;")
	})

	expected := "class Solution:\n    pass\nint main() {\n    return 0;\n}\n"
	assert.Equal(t, expected, string(w.Bytes()))
}

func TestWriter_CommentPrefix(t *testing.T) {
	// Test: Comments use the configured prefix
	py := NewWriter("    ", "#")
	py.WriteComment("Write your logic here")
	assert.Equal(t, "# Write your logic here\n", string(py.Bytes()))

	js := NewWriter("    ", "//")
	js.Indent()
	js.WriteComments("a", "b")
	assert.Equal(t, "    // a\n    // b\n", string(js.Bytes()))
}

func TestWriter_WriteText(t *testing.T) {
	// Test: WriteText re-indents a block and keeps inner blank lines
	w := NewWriter("  ", "//")
	w.Indent()

	w.WriteText("\nfirst\n\nsecond\n")

	assert.Equal(t, "  first\n\n  second\n", string(w.Bytes()))
}

func TestWriter_WriteLines(t *testing.T) {
	w := NewWriter("\t", "//")
	w.WriteLines("import a;", "import b;")
	w.WriteLinef("int %s = %d;", "x", 1)
	assert.Equal(t, "import a;\nimport b;\nint x = 1;\n", string(w.Bytes()))
}

func TestWriter_Bytes(t *testing.T) {
	w := NewWriter("\t", "//")
	w.WriteLine("new content")
	assert.Equal(t, []byte("new content\n"), w.Bytes())
}

func TestWriter_IndentDedentBounds(t *testing.T) {
	// Test: Dedent doesn't go below zero
	w := NewWriter("\t", "//")

	w.Dedent()
	w.WriteLine("a")
	w.Indent()
	w.WriteLine("b")
	w.Dedent()
	w.WriteLine("c")

	assert.Equal(t, "a\n\tb\nc\n", string(w.Bytes()))
}
