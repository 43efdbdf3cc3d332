package codegen

import (
	"github.com/codestub/codestub/internal/codegen/stub"
	"github.com/codestub/codestub/internal/schema"
	"github.com/codestub/codestub/internal/typemap"
)

// Backend is the interface that all language-specific template generators must implement
type Backend interface {
	// Generate returns the complete source file for the signature: imports,
	// auxiliary types, the solution stub and the execution harness
	Generate(sig schema.FunctionSignature) ([]byte, error)

	// Language returns the name of the target language (e.g., "java", "python")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".java", ".py")
	FileExtension() string

	// Table returns the backend's DSL type mapping table
	Table() *typemap.Table
}

// Options contains common options for template generation
type Options = stub.Options
