package schema

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// ErrNoProblems is returned when a document declares no problem blocks
var ErrNoProblems = errors.New("no problem blocks found")

// scalarTokens maps GraphQL named types to DSL tokens
var scalarTokens = map[string]string{
	"Int":     "int",
	"Long":    "long",
	"Float":   "float",
	"Double":  "double",
	"Boolean": "bool",
	"String":  "string",
	"Graph":   "Graph",
	"Tree":    "Tree<int>",
}

// ParseProblems parses a problem document (after preprocessing) into template
// requests, one per function declared in a problem block. The returned
// requests carry no language.
//
//	"""Two Sum"""
//	problem two-sum {
//	  "Return the indices of the two numbers adding up to target"
//	  twoSum(nums: [Int!]! @dsl(type: "int[]"), target: Int!): [Int!]! @dsl(type: "int[]")
//	}
func ParseProblems(input string) ([]TemplateRequest, error) {
	preprocessed := PreprocessGraphQL(input)

	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, errors.Newf("failed to parse GraphQL: %v", report)
	}

	var requests []TemplateRequest
	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		if node.Kind != ast.NodeKindObjectTypeDefinition {
			continue
		}
		requests = append(requests, parseProblem(&doc, node.Ref)...)
	}

	if len(requests) == 0 {
		return nil, ErrNoProblems
	}
	return requests, nil
}

func parseProblem(doc *ast.Document, ref int) []TemplateRequest {
	typeDef := doc.ObjectTypeDefinitions[ref]
	typeName := doc.Input.ByteSliceString(typeDef.Name)
	if !strings.HasPrefix(typeName, problemTypePrefix) {
		return nil
	}

	id := directiveArg(doc, typeDef.Directives, "problem", "id")
	title := getDescription(doc, typeDef.Description)
	if title == "" {
		title = id
	}

	fields := typeDef.FieldsDefinition.Refs
	requests := make([]TemplateRequest, 0, len(fields))
	for _, fieldRef := range fields {
		sig, description := parseFunction(doc, fieldRef)

		questionID := id
		if len(fields) > 1 {
			questionID = id + "-" + sig.FunctionName
		}
		if description == "" {
			description = title
		}

		requests = append(requests, TemplateRequest{
			QuestionID:  questionID,
			Title:       title,
			Description: description,
			Signature:   sig,
		})
	}
	return requests
}

func parseFunction(doc *ast.Document, fieldRef int) (FunctionSignature, string) {
	fieldDef := doc.FieldDefinitions[fieldRef]

	sig := FunctionSignature{
		FunctionName: doc.Input.ByteSliceString(fieldDef.Name),
		Parameters:   []Parameter{},
		Returns:      ReturnSpec{Type: dslType(doc, fieldDef.Type, fieldDef.Directives)},
	}

	for _, argRef := range fieldDef.ArgumentsDefinition.Refs {
		argDef := doc.InputValueDefinitions[argRef]
		sig.Parameters = append(sig.Parameters, Parameter{
			Name: doc.Input.ByteSliceString(argDef.Name),
			Type: dslType(doc, argDef.Type, argDef.Directives),
		})
	}

	return sig, getDescription(doc, fieldDef.Description)
}

// dslType converts a GraphQL type reference, honoring a @dsl(type: "...")
// override among directives
func dslType(doc *ast.Document, typeRef int, directives ast.DirectiveList) string {
	if override := directiveArg(doc, directives, "dsl", "type"); override != "" {
		return override
	}
	return convertType(doc, typeRef)
}

func convertType(doc *ast.Document, typeRef int) string {
	t := doc.Types[typeRef]
	switch t.TypeKind {
	case ast.TypeKindNonNull:
		return convertType(doc, t.OfType)
	case ast.TypeKindList:
		return "List<" + convertType(doc, t.OfType) + ">"
	case ast.TypeKindNamed:
		name := doc.Input.ByteSliceString(t.Name)
		if token, ok := scalarTokens[name]; ok {
			return token
		}
		// unknown names are passed through and rejected by type validation
		return name
	}
	return "Unknown"
}

func directiveArg(doc *ast.Document, directives ast.DirectiveList, name, arg string) string {
	for _, directiveRef := range directives.Refs {
		directive := doc.Directives[directiveRef]
		if doc.Input.ByteSliceString(directive.Name) != name {
			continue
		}
		return parseDirectiveArgs(doc, directive)[arg]
	}
	return ""
}

func parseDirectiveArgs(doc *ast.Document, directive ast.Directive) map[string]string {
	args := make(map[string]string)

	for _, argRef := range directive.Arguments.Refs {
		arg := doc.Arguments[argRef]
		argName := doc.Input.ByteSliceString(arg.Name)
		args[argName] = parseValue(doc, doc.ArgumentValue(argRef))
	}

	return args
}

func parseValue(doc *ast.Document, value ast.Value) string {
	switch value.Kind {
	case ast.ValueKindString:
		return doc.StringValueContentString(value.Ref)

	case ast.ValueKindEnum:
		if value.Ref >= 0 && value.Ref < len(doc.EnumValues) {
			return doc.Input.ByteSliceString(doc.EnumValues[value.Ref].Name)
		}

	case ast.ValueKindInteger:
		return fmt.Sprintf("%d", doc.IntValueAsInt(value.Ref))
	}

	return ""
}

func getDescription(doc *ast.Document, desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}

	content := strings.TrimSpace(doc.Input.ByteSliceString(desc.Content))
	return strings.TrimSpace(strings.Trim(content, `"`))
}
