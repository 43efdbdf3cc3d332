package codegen

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/schema"
	"github.com/codestub/codestub/internal/typemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend is a test backend that only knows int
type mockBackend struct {
	lang string
	opts Options
}

func (m *mockBackend) Generate(sig schema.FunctionSignature) ([]byte, error) {
	return []byte("mock output"), nil
}

func (m *mockBackend) Language() string {
	return m.lang
}

func (m *mockBackend) FileExtension() string {
	return ".mock"
}

func (m *mockBackend) Table() *typemap.Table {
	rules := typemap.Rules{Primitives: map[dsl.Primitive]string{dsl.Int: "i32"}}
	return typemap.NewTable(m.lang, rules, dsl.DefaultVocabulary)
}

func mockFactory(lang string) Factory {
	return func(opts Options) Backend {
		return &mockBackend{lang: lang, opts: opts}
	}
}

func TestRegistry_NewRegistry(t *testing.T) {
	// Test: New registry is empty by default
	r := NewRegistry()
	assert.NotNil(t, r)
	assert.Empty(t, r.Languages())

	_, err := r.Get("unknown", Options{})
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	// Test: Register custom backend and receive defaulted options
	r := NewRegistry()
	r.Register("mock", mockFactory("mock"))

	backend, err := r.Get("mock", Options{})
	require.NoError(t, err)
	assert.Equal(t, "mock", backend.Language())
	assert.True(t, r.Has("mock"))

	mock := backend.(*mockBackend)
	assert.Equal(t, "Solution", mock.opts.SolutionName)
}

func TestRegistry_UnsupportedLanguage(t *testing.T) {
	// Test: Error for unsupported language lists what is available
	r := NewRegistry()
	r.Register("mock", mockFactory("mock"))

	backend, err := r.Get("rust", Options{})
	assert.Nil(t, backend)
	require.Error(t, err)
	assert.Equal(t, "Unsupported language: rust", err.Error())

	var langErr *UnsupportedLanguageError
	require.True(t, errors.As(err, &langErr))
	assert.Equal(t, []string{"mock"}, langErr.Supported)
}

func TestRegistry_Languages(t *testing.T) {
	// Test: Languages are reported sorted
	r := NewRegistry()
	r.Register("python", mockFactory("python"))
	r.Register("cpp", mockFactory("cpp"))
	r.Register("java", mockFactory("java"))

	assert.Equal(t, []string{"cpp", "java", "python"}, r.Languages())
}

func TestDefaultRegistry(t *testing.T) {
	// Test: The default registry carries exactly the four backends
	assert.Equal(t, []string{"cpp", "java", "javascript", "python"}, DefaultRegistry.Languages())

	for _, lang := range DefaultRegistry.Languages() {
		backend, err := DefaultRegistry.Get(lang, Options{})
		require.NoError(t, err)
		assert.Equal(t, lang, backend.Language())
		assert.Len(t, backend.Table().Tokens(), 23, lang)
	}
}
