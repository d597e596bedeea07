package dsl

import (
	"context"
	"fmt"

	formskema "github.com/reoring/formskema"
)

type objectField struct {
	ad           AnyAdapter
	required     bool
	applyDefault func(ctx context.Context) (any, error)
	defaultValue any
}

type objectBuilder struct {
	keys          []string
	fields        map[string]*objectField
	unknownPolicy formskema.UnknownPolicy
	message       string
	title         string
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are stripped by default
// and fields are evaluated in declaration order.
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]*objectField{},
		unknownPolicy: formskema.UnknownStrip,
	}
}

// Field registers a field with its schema. Registering the same name twice
// panics.
func (b *objectBuilder) Field(name string, s FieldSchema) *fieldStep {
	if name == "" {
		panic("dsl.Object: field name must not be empty")
	}
	if _, dup := b.fields[name]; dup {
		panic(fmt.Sprintf("dsl.Object: field %q declared twice", name))
	}
	b.keys = append(b.keys, name)
	b.fields[name] = &objectField{ad: s.anyAdapter()}
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.fields[f.name].required = true
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	f.b.fields[f.name].required = false
	return f.b
}

// Default sets a value used when the field is missing. The default is parsed
// through the field schema, so it is validated like user input.
func (f *fieldStep) Default(v any) *objectBuilder {
	of := f.b.fields[f.name]
	ad := of.ad
	of.applyDefault = func(ctx context.Context) (any, error) { return ad.parse(ctx, v) }
	of.defaultValue = v
	return f.b
}

func (f *fieldStep) Field(name string, s FieldSchema) *fieldStep      { return f.b.Field(name, s) }
func (f *fieldStep) UnknownStrict() *objectBuilder                    { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder                     { return f.b.UnknownStrip() }
func (f *fieldStep) Build() (formskema.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() formskema.Schema[map[string]any]      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		if of, ok := b.fields[n]; ok {
			of.required = true
		}
	}
	return b
}

// UnknownStrict sets unknown policy to Strict.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = formskema.UnknownStrict
	return b
}

// UnknownStrip sets unknown policy to Strip.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = formskema.UnknownStrip
	return b
}

// Message sets the message reported when the object itself has the wrong type.
func (b *objectBuilder) Message(msg string) *objectBuilder {
	b.message = msg
	return b
}

// Describe sets the JSON Schema title.
func (b *objectBuilder) Describe(title string) *objectBuilder {
	b.title = title
	return b
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (formskema.Schema[map[string]any], error) {
	for _, k := range b.keys {
		if b.fields[k].ad.parse == nil {
			return nil, formskema.Issues{formskema.Issue{Path: k, Code: formskema.CodeParseError, Message: "field schema has no parser"}}
		}
	}
	keys := append([]string(nil), b.keys...)
	fields := make(map[string]*objectField, len(b.fields))
	for k, of := range b.fields {
		cp := *of
		fields[k] = &cp
	}
	return &objectSchema{keys: keys, fields: fields, unknownPolicy: b.unknownPolicy, message: b.message, title: b.title}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() formskema.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
