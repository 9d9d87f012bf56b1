package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for devcmd configuration
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidateWithSchema validates config content against the JSON Schema.
// The format is chosen from the path extension.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid YAML syntax: %v", err))
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid JSON syntax: %v", err))
			return result, nil
		}
	case ".toml":
		m, err := toml.Parser().Unmarshal(content)
		if err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid TOML syntax: %v", err))
			return result, nil
		}
		data = m
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}

	// An empty YAML document decodes to nil
	if data == nil {
		data = map[string]interface{}{}
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		for _, err := range validationResult.Errors() {
			result.addError(err.Field(), err.Description())
		}
	}

	return result, nil
}
