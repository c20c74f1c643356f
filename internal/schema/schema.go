// Package schema validates the storage file against its JSON Schema.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var rawSchema string

// Validate checks that data is a valid storage file. The returned error
// carries the schema violation details.
func Validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(rawSchema)); err != nil {
		return fmt.Errorf("load embedded schema: %w", err)
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		return fmt.Errorf("compile embedded schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse tasks file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("validate tasks file: %w", err)
	}
	return nil
}
