package jsonschema

import (
	"encoding/json"
	"fmt"
	"sync"

	kjsonschema "github.com/kaptinlin/jsonschema"
)

// Validator checks instances against a compiled copy of a Schema.
// Compilation happens once, on first use.
type Validator struct {
	schema *Schema

	once     sync.Once
	compiled *kjsonschema.Schema
	err      error
}

// NewValidator returns a Validator for s.
func NewValidator(s *Schema) *Validator {
	return &Validator{schema: s}
}

// Compile compiles the schema, returning an error when it is not a valid
// JSON Schema document.
func (v *Validator) Compile() error {
	v.once.Do(func() {
		raw, err := json.Marshal(v.schema)
		if err != nil {
			v.err = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := kjsonschema.NewCompiler()
		v.compiled, v.err = compiler.Compile(raw)
		if v.err != nil {
			v.err = fmt.Errorf("invalid schema: %w", v.err)
		}
	})
	return v.err
}

// Validate checks instance (a decoded JSON value) against the schema.
func (v *Validator) Validate(instance any) error {
	if err := v.Compile(); err != nil {
		return err
	}
	result := v.compiled.Validate(instance)
	if !result.IsValid() {
		return fmt.Errorf("%s", result.Error())
	}
	return nil
}
