package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://multiplier-config.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError reports a configuration that cannot start a session.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}
	return fmt.Sprintf("invalid config %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks f against the config schema. source names the file in the
// error and may be empty.
func Validate(f *File, source string) error {
	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	parsed, err := decodeJSON(raw)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{Source: source, Err: err}
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := decodeJSON(schemaJSON)
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// decodeJSON keeps numbers as json.Number so integer checks are exact.
func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
