// Package schema validates backend response bodies against an embedded OpenAPI document
// before they are decoded into entities.
package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema names in the embedded document
const (
	User                 = "User"
	AuthSession          = "AuthSession"
	HealthPrediction     = "HealthPrediction"
	HealthPredictionList = "HealthPredictionList"
	HealthStats          = "HealthStats"
	AIChatMessage        = "AIChatMessage"
	AIStatus             = "AIStatus"
	MessageResponse      = "MessageResponse"
)

//go:embed openapi.yaml
var document []byte

// Error reports a body that does not match its schema
type Error struct {
	Schema string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected response shape for %s: %v", e.Schema, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validator holds the parsed document
type Validator struct {
	doc *openapi3.T
}

// NewValidator loads and validates the embedded document
func NewValidator() (*Validator, error) {
	return NewValidatorFromData(document)
}

// NewValidatorFromData loads an OpenAPI document from raw YAML or JSON
func NewValidatorFromData(data []byte) (*Validator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	return &Validator{doc: doc}, nil
}

// Has reports whether the document defines the named schema
func (v *Validator) Has(name string) bool {
	_, ok := v.doc.Components.Schemas[name]
	return ok
}

// Validate checks body against the named schema
func (v *Validator) Validate(name string, body []byte) error {
	ref, ok := v.doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", name)
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return &Error{Schema: name, Cause: fmt.Errorf("invalid json: %w", err)}
	}

	if err := ref.Value.VisitJSON(value); err != nil {
		return &Error{Schema: name, Cause: err}
	}
	return nil
}

// Decode validates body against the named schema and unmarshals it into out
func (v *Validator) Decode(name string, body []byte, out any) error {
	if err := v.Validate(name, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Schema: name, Cause: err}
	}
	return nil
}
