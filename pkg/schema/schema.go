// Package schema wraps JSON Schema compilation and the output safety net:
// every service re-validates its response against its own schema before the
// bytes leave the process.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// MustCompile compiles a draft 2020-12 schema document at init time.
// Schemas are part of each service's fixed configuration, so a bad one is a
// programming error worth panicking over.
func MustCompile(name, doc string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := fmt.Sprintf("https://veridical.schemas.local/%s.schema.json", name)
	if err := c.AddResource(url, strings.NewReader(doc)); err != nil {
		panic(fmt.Sprintf("schema %s: load: %v", name, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("schema %s: compile: %v", name, err))
	}
	return compiled
}

// MarshalValidated serializes v and validates the serialized form against s,
// returning the bytes that were actually checked. Validation runs on the
// decoded JSON rather than the Go value so the check covers exactly what a
// client would receive.
func MarshalValidated(s *jsonschema.Schema, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	var decoded any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response for validation: %w", err)
	}
	if err := s.Validate(decoded); err != nil {
		return nil, fmt.Errorf("response schema violation: %w", err)
	}
	return raw, nil
}
