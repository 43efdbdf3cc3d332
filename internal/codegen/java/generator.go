// Package java generates Java solution templates. The harness reads a JSON
// object from stdin with Gson and prints the result as JSON.
package java

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
const Language = "java"

// Generator generates Java templates from a function signature
type Generator struct {
	opts  stub.Options
	table *typemap.Table
}

// NewGenerator creates a new Java template generator
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
	return ".java"
}

// Table returns the DSL to Java type table
func (g *Generator) Table() *typemap.Table {
	return g.table
}

// Imports returns the import lines needed by sig
func (g *Generator) Imports(sig schema.FunctionSignature) []string {
	return stub.ResolveImports(sig, baseline, importRules)
}

// Generate renders the Java template for sig
func (g *Generator) Generate(sig schema.FunctionSignature) ([]byte, error) {
	if sig.FunctionName == "" {
		return nil, errors.New("function name is required")
	}

	w := writer.NewWriter("    ", "//")

	w.WriteLines(g.Imports(sig)...)

	if elem, ok := stub.TreeElement(sig.Parameters, sig.Returns); ok {
		w.BlankLine()
		w.WriteText(fmt.Sprintf(treeNodeDefinition, g.valueType(elem)))
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

	w.WriteBlock(fmt.Sprintf("class %s {", g.opts.SolutionName), "}", func() {
		w.WriteBlock(fmt.Sprintf("public %s %s(%s) {", returns.Syntax, sig.FunctionName, strings.Join(params, ", ")), "}", func() {
			w.WriteComment("Write your logic here")
			w.WriteLine(stub.DefaultReturn(returns, literals))
		})
	})
}

func (g *Generator) writeHarness(w *writer.Writer, sig schema.FunctionSignature) {
	w.WriteBlock("public class Main {", "}", func() {
		w.WriteBlock("public static void main(String[] args) {", "}", func() {
			w.WriteComment("Do not edit below this line")
			w.WriteText(inputReader)
			w.BlankLine()

			w.WriteBlock("try {", "", func() {
				w.WriteLine("Gson gson = new Gson();")
				w.WriteLine("JsonObject data = gson.fromJson(input.toString(), JsonObject.class);")
				w.BlankLine()
				w.WriteLinef("%s solution = new %s();", g.opts.SolutionName, g.opts.SolutionName)
				g.writeCall(w, sig)
				w.WriteLine("System.out.println(gson.toJson(result));")
			})
			w.WriteBlock("} catch (Exception e) {", "}", func() {
				w.WriteLine(`System.err.println("Error: " + e.getMessage());`)
				w.WriteLine("System.exit(1);")
			})
		})
	})
}

func (g *Generator) writeCall(w *writer.Writer, sig schema.FunctionSignature) {
	returnType := g.table.Syntax(sig.Returns.Type)
	if len(sig.Parameters) == 0 {
		w.WriteLinef("%s result = solution.%s();", returnType, sig.FunctionName)
		return
	}

	w.WriteLinef("%s result = solution.%s(", returnType, sig.FunctionName)
	w.Indent()
	for i, p := range sig.Parameters {
		sep := ","
		if i == len(sig.Parameters)-1 {
			sep = ""
		}
		w.WriteLine(g.decode(p) + sep)
	}
	w.Dedent()
	w.WriteLine(");")
}

// decode reads one parameter from the JSON object. Generic types need a
// TypeToken since their element type is erased at runtime.
func (g *Generator) decode(p schema.Parameter) string {
	syntax := g.table.Syntax(p.Type)
	if t, err := dsl.Parse(p.Type); err == nil && t.Contains(dsl.KindList) {
		return fmt.Sprintf("gson.fromJson(data.get(%q), new TypeToken<%s>() {}.getType())", p.Name, syntax)
	}
	return fmt.Sprintf("gson.fromJson(data.get(%q), %s.class)", p.Name, syntax)
}

// valueType spells the TreeNode value field for the tree's element type
func (g *Generator) valueType(elem dsl.Type) string {
	if mapped, ok := rules.Derive(elem); ok {
		return mapped.Syntax
	}
	return "int"
}
