// Package javascript generates Node.js solution templates annotated with JSDoc
package javascript

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
const Language = "javascript"

// Generator generates JavaScript templates from a function signature
type Generator struct {
	opts  stub.Options
	table *typemap.Table
}

// NewGenerator creates a new JavaScript template generator
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
	return ".js"
}

// Table returns the DSL to JSDoc type table
func (g *Generator) Table() *typemap.Table {
	return g.table
}

// Imports returns the require lines needed by sig
func (g *Generator) Imports(sig schema.FunctionSignature) []string {
	return stub.ResolveImports(sig, baseline, nil)
}

// Generate renders the JavaScript template for sig. The solution is a
// function expression named after the signature; SolutionName is not used.
func (g *Generator) Generate(sig schema.FunctionSignature) ([]byte, error) {
	if sig.FunctionName == "" {
		return nil, errors.New("function name is required")
	}

	w := writer.NewWriter("    ", "//")

	w.WriteLines(g.Imports(sig)...)

	if elem, ok := stub.TreeElement(sig.Parameters, sig.Returns); ok {
		w.BlankLine()
		w.WriteText(fmt.Sprintf(treeNodeDefinition, zeroValue(elem)))
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
	returns := g.table.Map(sig.Returns.Type)

	w.WriteLine("/**")
	for _, p := range sig.Parameters {
		w.WriteLinef(" * @param {%s} %s", g.table.Syntax(p.Type), p.Name)
	}
	w.WriteLinef(" * @return {%s}", returns.Syntax)
	w.WriteLine(" */")

	opener := fmt.Sprintf("var %s = function(%s) {", sig.FunctionName, strings.Join(sig.ParameterNames(), ", "))
	w.WriteBlock(opener, "};", func() {
		w.WriteComment("Write your logic here")
		w.WriteLine(stub.DefaultReturn(returns, literals))
	})
}

func (g *Generator) writeHarness(w *writer.Writer, sig schema.FunctionSignature) {
	args := make([]string, len(sig.Parameters))
	for i, p := range sig.Parameters {
		args[i] = "data." + p.Name
	}

	w.WriteComment("Do not edit below this line")
	w.WriteBlock("if (typeof module !== 'undefined' && module.exports) {", "}", func() {
		w.WriteBlock("try {", "", func() {
			w.WriteLine("const input = fs.readFileSync(0, 'utf8');")
			w.WriteLine("const data = JSON.parse(input);")
			w.WriteLinef("const result = %s(%s);", sig.FunctionName, strings.Join(args, ", "))
			w.WriteLine("console.log(JSON.stringify(result));")
		})
		w.WriteBlock("} catch (error) {", "}", func() {
			w.WriteLine("console.error('Error:', error.message);")
			w.WriteLine("process.exit(1);")
		})
	})
}

func zeroValue(elem dsl.Type) string {
	if elem.Kind == dsl.KindPrimitive && elem.Primitive == dsl.String {
		return `""`
	}
	return "0"
}
