// Package jsonschema holds the JSON Schema projection of formskema schemas.
package jsonschema

import j "github.com/goccy/go-json"

// Draft is the dialect advertised by Document.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Default any    `json:"default,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// ErrorMessage carries the rule message so a UI can reuse the same text.
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Document marks s as a top-level schema with a title and renders it as
// indented JSON.
func Document(s *Schema, title string) ([]byte, error) {
	out := *s
	out.Schema = Draft
	out.Title = title
	return j.MarshalIndent(&out, "", "  ")
}
