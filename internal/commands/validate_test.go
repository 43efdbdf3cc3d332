package commands

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	ctrl, out := newTestController(t)
	req := fibonacciRequest("python")
	req.Signature.Parameters[0].Type = "List<int>"
	input := writeRequest(t, t.TempDir(), "fib.json", req)

	require.NoError(t, ctrl.Validate(context.Background(), ValidateOptions{Input: input}))
	assert.Contains(t, out.String(), "can be generated for python")
	assert.Contains(t, out.String(), "n: List<int> -> List[int]")
	assert.Contains(t, out.String(), "returns: int -> int")
}

func TestValidate_Invalid(t *testing.T) {
	// Test: Every structural problem is printed
	ctrl, out := newTestController(t)
	req := fibonacciRequest("rust")
	req.Title = ""
	input := writeRequest(t, t.TempDir(), "fib.yaml", req)

	err := ctrl.Validate(context.Background(), ValidateOptions{Input: input})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Contains(t, out.String(), "- title: title is required")
	assert.Contains(t, out.String(), "- language: language must be one of: cpp, java, javascript, python")
}

func TestValidate_LanguageOverride(t *testing.T) {
	ctrl, out := newTestController(t)
	input := writeRequest(t, t.TempDir(), "fib.json", fibonacciRequest("rust"))

	require.NoError(t, ctrl.Validate(context.Background(), ValidateOptions{Input: input, Language: "cpp"}))
	assert.Contains(t, out.String(), "can be generated for cpp")
}

func TestValidate_NoInput(t *testing.T) {
	ctrl, _ := newTestController(t)
	assert.Error(t, ctrl.Validate(context.Background(), ValidateOptions{}))
}
