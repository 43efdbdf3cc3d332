// Package python generates Python 3 solution templates
package python

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
const Language = "python"

// Generator generates Python templates from a function signature
type Generator struct {
	opts  stub.Options
	table *typemap.Table
}

// NewGenerator creates a new Python template generator
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
	return ".py"
}

// Table returns the DSL to Python type table
func (g *Generator) Table() *typemap.Table {
	return g.table
}

// Imports returns the import lines needed by sig
func (g *Generator) Imports(sig schema.FunctionSignature) []string {
	imp := stub.NewImports(baseline...)

	types := stub.SlotTypes(sig)
	var names []string
	for _, rule := range typingRules {
		for _, t := range types {
			if rule.when(t) {
				names = append(names, rule.name)
				break
			}
		}
	}
	if len(names) > 0 {
		imp.Add("from typing import " + strings.Join(names, ", "))
	}

	return imp.Lines()
}

// Generate renders the Python template for sig
func (g *Generator) Generate(sig schema.FunctionSignature) ([]byte, error) {
	if sig.FunctionName == "" {
		return nil, errors.New("function name is required")
	}

	w := writer.NewWriter("    ", "#")

	w.WriteLines(g.Imports(sig)...)

	treeElem, hasTree := stub.TreeElement(sig.Parameters, sig.Returns)
	if hasTree {
		twoBlankLines(w)
		w.WriteText(fmt.Sprintf(treeNodeDefinition, treeDefaultValue(treeElem)))
	}

	twoBlankLines(w)
	g.writeSolution(w, sig)

	if !g.opts.OmitHarness {
		if hasTree {
			twoBlankLines(w)
			w.WriteText(treeCodecs)
		}
		twoBlankLines(w)
		g.writeHarness(w, sig, hasTree)
	}

	return w.Bytes(), nil
}

func (g *Generator) writeSolution(w *writer.Writer, sig schema.FunctionSignature) {
	params := []string{"self"}
	for _, p := range sig.Parameters {
		params = append(params, fmt.Sprintf("%s: %s", p.Name, g.table.Syntax(p.Type)))
	}
	returns := g.table.Map(sig.Returns.Type)

	w.WriteBlock(fmt.Sprintf("class %s:", g.opts.SolutionName), "", func() {
		w.WriteBlock(fmt.Sprintf("def %s(%s) -> %s:", sig.FunctionName, strings.Join(params, ", "), returns.Syntax), "", func() {
			w.WriteComment("Write your logic here")
			w.WriteLine(stub.DefaultReturn(returns, literals))
		})
	})
}

func (g *Generator) writeHarness(w *writer.Writer, sig schema.FunctionSignature, hasTree bool) {
	args := make([]string, len(sig.Parameters))
	for i, p := range sig.Parameters {
		args[i] = argument(p)
	}

	encoder := "str"
	if hasTree {
		encoder = "_encode"
	}

	w.WriteBlock(`if __name__ == "__main__":`, "", func() {
		w.WriteComment("Do not edit below this line")
		w.WriteBlock("try:", "", func() {
			w.WriteLine("data = json.loads(sys.stdin.read())")
			w.WriteLinef("solution = %s()", g.opts.SolutionName)
			w.WriteLinef("result = solution.%s(%s)", sig.FunctionName, strings.Join(args, ", "))
			w.WriteLinef("print(json.dumps(result, default=%s))", encoder)
		})
		w.WriteBlock("except Exception as e:", "", func() {
			w.WriteLine(`print(f"Error: {str(e)}", file=sys.stderr)`)
			w.WriteLine("sys.exit(1)")
		})
	})
}

func argument(p schema.Parameter) string {
	value := fmt.Sprintf("data[%q]", p.Name)
	if t, err := dsl.Parse(p.Type); err == nil && t.Kind == dsl.KindTree {
		return "_decode_tree(" + value + ")"
	}
	return value
}

func treeDefaultValue(elem dsl.Type) string {
	switch {
	case elem.Kind != dsl.KindPrimitive:
		return "None"
	case elem.Primitive.IsNumeric():
		return "0"
	case elem.Primitive == dsl.Bool:
		return "False"
	case elem.Primitive == dsl.String:
		return `""`
	default:
		return "None"
	}
}

// top-level Python definitions are separated by two blank lines
func twoBlankLines(w *writer.Writer) {
	w.BlankLine()
	w.Newline()
}
