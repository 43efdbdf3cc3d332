// Package cpp generates C++ solution templates.
//
// C++ has no JSON parser in its standard library, so the harness reads stdin
// and leaves the decoding and the call as commented steps for the author.
package cpp

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/codestub/codestub/internal/codegen/stub"
	"github.com/codestub/codestub/internal/codegen/writer"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/schema"
	"github.com/codestub/codestub/internal/typemap"
)

// Language is the registry key of this backend
const Language = "cpp"

// Generator generates C++ templates from a function signature
type Generator struct {
	opts  stub.Options
	table *typemap.Table
}

// NewGenerator creates a new C++ template generator
func NewGenerator(opts stub.Options) *Generator {
	opts = opts.WithDefaults()
	return &Generator{
		opts:  opts,
		table: typemap.NewTable(Language, rules, opts.Vocabulary),
	}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return Language
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".cpp"
}

// Table returns the DSL to C++ type table
func (g *Generator) Table() *typemap.Table {
	return g.table
}

// Imports returns the #include lines needed by sig
func (g *Generator) Imports(sig schema.FunctionSignature) []string {
	return stub.ResolveImports(sig, baseline, importRules)
}

// Generate renders the C++ template for sig
func (g *Generator) Generate(sig schema.FunctionSignature) ([]byte, error) {
	if sig.FunctionName == "" {
		return nil, errors.New("function name is required")
	}

	w := writer.NewWriter("    ", "//")

	w.WriteLines(g.Imports(sig)...)
	w.BlankLine()
	w.WriteLine("using namespace std;")

	if elem, ok := stub.TreeElement(sig.Parameters, sig.Returns); ok {
		w.BlankLine()
		valueType, zero := nodeValue(elem)
		w.WriteText(fmt.Sprintf(treeNodeDefinition, valueType, zero))
	}

	w.BlankLine()
	g.writeSolution(w, sig)

	if !g.opts.OmitHarness {
		w.BlankLine()
		g.writeHarness(w, sig)
	}

	return w.Bytes(), nil
}

func (g *Generator) writeSolution(w *writer.Writer, sig schema.FunctionSignature) {
	params := make([]string, len(sig.Parameters))
	for i, p := range sig.Parameters {
		params[i] = g.table.Syntax(p.Type) + " " + p.Name
	}
	returns := g.table.Map(sig.Returns.Type)

	w.WriteBlock(fmt.Sprintf("class %s {", g.opts.SolutionName), "};", func() {
		// access specifiers sit at class indentation
		w.Dedent()
		w.WriteLine("public:")
		w.Indent()
		w.WriteBlock(fmt.Sprintf("%s %s(%s) {", returns.Syntax, sig.FunctionName, strings.Join(params, ", ")), "}", func() {
			w.WriteComment("Write your logic here")
			w.WriteLine(stub.DefaultReturn(returns, literals))
		})
	})
}

func (g *Generator) writeHarness(w *writer.Writer, sig schema.FunctionSignature) {
	w.WriteBlock("int main() {", "}", func() {
		w.WriteComment("Do not edit below this line")
		w.WriteLine("ios_base::sync_with_stdio(false);")
		w.WriteLine("cin.tie(nullptr);")
		w.BlankLine()

		w.WriteLine("string input, line;")
		w.WriteBlock("while (getline(cin, line)) {", "}", func() {
			w.WriteLine("input += line;")
		})
		w.BlankLine()

		w.WriteLinef("%s solution;", g.opts.SolutionName)
		steps := []string{"Parse each parameter from the JSON object in input:"}
		for _, p := range sig.Parameters {
			steps = append(steps, fmt.Sprintf("  %s %s = /* input[%q] */;", g.table.Syntax(p.Type), p.Name, p.Name))
		}
		steps = append(steps,
			"Then call the solution and print the result:",
			fmt.Sprintf("  auto result = solution.%s(%s);", sig.FunctionName, strings.Join(sig.ParameterNames(), ", ")),
		)
		w.WriteComments(steps...)
		w.BlankLine()
		w.WriteLine("return 0;")
	})
}

// nodeValue returns the TreeNode value type and its zero initializer
func nodeValue(elem dsl.Type) (string, string) {
	mapped, ok := rules.Derive(elem)
	if !ok {
		return "int", "0"
	}
	switch {
	case mapped.Traits.Has(typemap.Numeric):
		return mapped.Syntax, "0"
	case mapped.Traits.Has(typemap.Boolean):
		return mapped.Syntax, "false"
	default:
		return mapped.Syntax, ""
	}
}
