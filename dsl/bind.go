package dsl

import (
	"context"
	"fmt"
	"reflect"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// Bind builds an object schema and binds it to struct type T. Every declared
// key must resolve to an exported field of T (nested objects to nested
// structs); mismatches are reported as an error.
func Bind[T any](b *objectBuilder) (formskema.Schema[T], error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	os, ok := s.(*objectSchema)
	if !ok {
		return nil, formskema.Issues{formskema.Issue{Code: formskema.CodeParseError, Message: "unexpected schema type for Bind"}}
	}
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, formskema.Issues{formskema.Issue{Code: formskema.CodeParseError, Message: "Bind[T] requires struct T"}}
	}
	if err := checkBindable(os, rt, ""); err != nil {
		return nil, err
	}
	return &typedObjectSchema[T]{inner: os}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b *objectBuilder) formskema.Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// typedObjectSchema adapts an objectSchema to a typed struct T using key resolution.
type typedObjectSchema[T any] struct {
	inner *objectSchema
}

func (s *typedObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var out T
	m, err := s.inner.Parse(ctx, v)
	if err != nil {
		return out, err
	}
	if err := assignStruct(reflect.ValueOf(&out).Elem(), m, ""); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (s *typedObjectSchema[T]) Validate(ctx context.Context, v any) error {
	return s.inner.Validate(ctx, v)
}

func (s *typedObjectSchema[T]) CheckField(ctx context.Context, path string, v any) error {
	return s.inner.CheckField(ctx, path, v)
}

func (s *typedObjectSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

// FieldPaths lists every leaf field path in declaration order.
func (s *typedObjectSchema[T]) FieldPaths() []string { return s.inner.FieldPaths() }

func (s *typedObjectSchema[T]) anyAdapter() AnyAdapter { return s.inner.anyAdapter() }

func fieldIndexByKey(rt reflect.Type) map[string]int {
	idx := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := formskema.ResolveStructKey(sf)
		if name == "" || name == "-" {
			continue
		}
		idx[name] = i
	}
	return idx
}

func checkBindable(os *objectSchema, rt reflect.Type, prefix string) error {
	idx := fieldIndexByKey(rt)
	for _, k := range os.keys {
		i, ok := idx[k]
		path := formskema.JoinPath(prefix, k)
		if !ok {
			return fmt.Errorf("dsl.Bind: %s has no field for key %q", rt, path)
		}
		if child := os.fields[k].ad.object; child != nil {
			ft := rt.Field(i).Type
			if ft.Kind() != reflect.Struct {
				return fmt.Errorf("dsl.Bind: key %q is an object but %s.%s is %s", path, rt, rt.Field(i).Name, ft)
			}
			if err := checkBindable(child, ft, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func assignStruct(rv reflect.Value, m map[string]any, prefix string) error {
	idx := fieldIndexByKey(rv.Type())
	for k, val := range m {
		i, ok := idx[k]
		if !ok || val == nil {
			continue
		}
		path := formskema.JoinPath(prefix, k)
		fv := rv.Field(i)
		if sub, isMap := val.(map[string]any); isMap && fv.Kind() == reflect.Struct {
			if err := assignStruct(fv, sub, path); err != nil {
				return err
			}
			continue
		}
		vv := reflect.ValueOf(val)
		// int -> string is convertible in reflect but yields a rune; never bind it.
		if !vv.Type().ConvertibleTo(fv.Type()) || (fv.Kind() == reflect.String) != (vv.Kind() == reflect.String) {
			return formskema.Issues{formskema.Issue{Path: path, Code: formskema.CodeInvalidType, Message: fmt.Sprintf("cannot bind %s to %s", vv.Type(), fv.Type())}}
		}
		fv.Set(vv.Convert(fv.Type()))
	}
	return nil
}
