package dsl

import (
	"context"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// FieldSchema is anything Object().Field accepts: AnyAdapter, the primitive
// schemas of this package, and built objects.
type FieldSchema interface {
	anyAdapter() AnyAdapter
}

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper.
type AnyAdapter struct {
	parse      func(context.Context, any) (any, error)
	jsonSchema func() (*js.Schema, error)
	// message is reused when the field is missing; empty falls back to the catalog.
	message string
	// object is set for nested objects so single-field checks can descend.
	object *objectSchema
}

func (ad AnyAdapter) anyAdapter() AnyAdapter { return ad }

// SchemaOf adapts a strongly typed Schema[T] for use in Field builders.
// Schemas built by this package keep their messages and nesting.
func SchemaOf[T any](s formskema.Schema[T]) AnyAdapter {
	if fs, ok := any(s).(FieldSchema); ok {
		return fs.anyAdapter()
	}
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
	}
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with CodeParseError.
func issuesFromErr(path string, err error) formskema.Issues {
	if err == nil {
		return nil
	}
	if iss, ok := formskema.AsIssues(err); ok {
		return formskema.Rebase(path, iss)
	}
	return formskema.Issues{formskema.Issue{Path: path, Code: formskema.CodeParseError, Message: err.Error(), Cause: err}}
}
