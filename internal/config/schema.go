package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/js-uploader.v1.schema.json
var schemaFS embed.FS

const schemaPath = "schemas/js-uploader.v1.schema.json"

// SchemaError lists every schema violation found in a config file.
type SchemaError struct {
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("validation failed with %d errors:\n  %s", len(e.Issues), strings.Join(e.Issues, "\n  "))
}

// ValidateFile checks the YAML file at path against the embedded JSON schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return ValidateBytes(data)
}

// ValidateBytes checks a YAML document against the embedded JSON schema.
func ValidateBytes(data []byte) error {
	schemaBytes, err := schemaFS.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return &SchemaError{Issues: issues}
}
