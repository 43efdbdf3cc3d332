package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for request files that are neither JSON
// nor YAML
var ErrUnsupportedFormat = errors.New("unsupported request file format")

// IsRequestFile reports whether path has a request file extension
func IsRequestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadRequest reads a template request from a .json, .yaml or .yml file
func LoadRequest(path string) (TemplateRequest, error) {
	var req TemplateRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, errors.Wrapf(err, "read request file %s", path)
	}

	if err := DecodeRequest(data, filepath.Ext(path), &req); err != nil {
		return req, errors.Wrapf(err, "decode request file %s", path)
	}
	return req, nil
}

// DecodeRequest decodes data according to the file extension ext
func DecodeRequest(data []byte, ext string, req *TemplateRequest) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal(data, req)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, req)
	default:
		return errors.WithHint(
			errors.Mark(errors.Newf("%q", ext), ErrUnsupportedFormat),
			"use a .json, .yaml or .yml file",
		)
	}
}

// EncodeRequest encodes req as YAML or JSON depending on the extension ext
func EncodeRequest(req TemplateRequest, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(req)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		return data, nil
	default:
		return nil, errors.Mark(errors.Newf("%q", ext), ErrUnsupportedFormat)
	}
}

// WriteRequest writes req to path, as YAML or JSON depending on the extension
func WriteRequest(path string, req TemplateRequest) error {
	data, err := EncodeRequest(req, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write request file %s", path)
	}
	return nil
}
