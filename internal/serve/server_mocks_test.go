package serve

import (
	"github.com/stretchr/testify/mock"

	"github.com/codestub/codestub/internal/codegen"
	"github.com/codestub/codestub/internal/schema"
)

// Mock implementations for testing the server
type mockTemplateService struct {
	mock.Mock
}

func (m *mockTemplateService) Languages() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *mockTemplateService) Generate(sig schema.FunctionSignature, language, questionID string) (string, error) {
	args := m.Called(sig, language, questionID)
	return args.String(0), args.Error(1)
}

func (m *mockTemplateService) ValidateTypes(params []schema.Parameter, returns schema.ReturnSpec, language string) ([]codegen.TypeError, error) {
	args := m.Called(params, returns, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]codegen.TypeError), args.Error(1)
}

func (m *mockTemplateService) TypeMapping(language string) (map[string]string, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *mockTemplateService) MapType(token, language string) (string, error) {
	args := m.Called(token, language)
	return args.String(0), args.Error(1)
}

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(req schema.TemplateRequest) error {
	args := m.Called(req)
	return args.Error(0)
}
