package schema

// FunctionSignature describes the function a template is generated for
type FunctionSignature struct {
	FunctionName string      `json:"function_name" yaml:"function_name"`
	Parameters   []Parameter `json:"parameters" yaml:"parameters"`
	Returns      ReturnSpec  `json:"returns" yaml:"returns"`
}

// Parameter is a single named, typed function argument
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// ReturnSpec describes the function's return value
type ReturnSpec struct {
	Type string `json:"type" yaml:"type"`
}

// TemplateRequest is the payload accepted by the template endpoints and the
// request files read by the CLI
type TemplateRequest struct {
	QuestionID  string            `json:"question_id" yaml:"question_id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Signature   FunctionSignature `json:"signature" yaml:"signature"`
	Language    string            `json:"language" yaml:"language"`
}

// Types returns every parameter type followed by the return type
func (s FunctionSignature) Types() []string {
	types := make([]string, 0, len(s.Parameters)+1)
	for _, p := range s.Parameters {
		types = append(types, p.Type)
	}
	return append(types, s.Returns.Type)
}

// ParameterNames returns the parameter names in declaration order
func (s FunctionSignature) ParameterNames() []string {
	names := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		names[i] = p.Name
	}
	return names
}
