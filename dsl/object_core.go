package dsl

import (
	"context"
	"fmt"
	"sort"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/messages"
)

type objectSchema struct {
	keys          []string
	fields        map[string]*objectField
	unknownPolicy formskema.UnknownPolicy
	message       string
	title         string
}

var (
	_ formskema.Schema[map[string]any] = (*objectSchema)(nil)
	_ formskema.FieldChecker           = (*objectSchema)(nil)
)

// evalField resolves one field. A nil value counts as missing: the default
// applies when set, otherwise required fields report the field's message.
// Issues are keyed by path.
func (o *objectSchema) evalField(ctx context.Context, path string, of *objectField, val any, exists bool) (any, bool, formskema.Issues) {
	if !exists || val == nil {
		if of.applyDefault != nil {
			dv, err := of.applyDefault(ctx)
			if err != nil {
				return nil, false, issuesFromErr(path, err)
			}
			return dv, true, nil
		}
		if of.required {
			return nil, false, formskema.Issues{
				formskema.At(path).Issue(formskema.CodeRequired, messages.Or(of.ad.message, formskema.CodeRequired)),
			}
		}
		return nil, false, nil
	}
	parsed, err := of.ad.parse(ctx, val)
	if err != nil {
		return nil, false, issuesFromErr(path, err)
	}
	return parsed, true, nil
}

// collectKnown parses known fields in declaration order. Every field is
// evaluated unless the context asks for fail-fast.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, formskema.Issues) {
	out := make(map[string]any, len(o.keys))
	var iss formskema.Issues
	for _, k := range o.keys {
		val, exists := src[k]
		parsed, set, i2 := o.evalField(ctx, k, o.fields[k], val, exists)
		if len(i2) > 0 {
			iss = formskema.AppendIssues(iss, i2...)
			if formskema.IsFailFast(ctx) {
				return out, iss
			}
			continue
		}
		if set {
			out[k] = parsed
		}
	}
	return out, iss
}

// collectUnknown reports unknown keys in key-sorted order under UnknownStrict.
func (o *objectSchema) collectUnknown(src map[string]any) formskema.Issues {
	if o.unknownPolicy != formskema.UnknownStrict {
		return nil
	}
	var uks []string
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss formskema.Issues
	for _, k := range uks {
		iss = formskema.AppendIssues(iss, formskema.Root().Field(k).Issue(formskema.CodeUnknownKey, messages.T(formskema.CodeUnknownKey)))
	}
	return iss
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, formskema.Issues{formskema.Issue{Code: formskema.CodeInvalidType, Message: messages.Or(o.message, formskema.CodeInvalidType), Hint: "expected object"}}
	}
	out, iss := o.collectKnown(ctx, src)
	if formskema.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	if unknown := o.collectUnknown(src); len(unknown) > 0 {
		iss = formskema.AppendIssues(iss, unknown...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *objectSchema) Validate(ctx context.Context, v any) error {
	_, err := o.Parse(ctx, v)
	return err
}

// CheckField validates the value of one declared field, descending into
// nested objects along the dot-joined path. Missing values (nil) follow the
// same default/required handling as a full parse.
func (o *objectSchema) CheckField(ctx context.Context, path string, v any) error {
	parts := formskema.SplitPath(path)
	if len(parts) == 0 {
		return o.Validate(ctx, v)
	}
	cur := o
	prefix := ""
	for i, p := range parts {
		of, ok := cur.fields[p]
		if !ok {
			return fmt.Errorf("%w: %s", formskema.ErrUnknownField, path)
		}
		fp := formskema.JoinPath(prefix, p)
		if i == len(parts)-1 {
			_, _, iss := cur.evalField(ctx, fp, of, v, true)
			if len(iss) > 0 {
				return iss
			}
			return nil
		}
		if of.ad.object == nil {
			return fmt.Errorf("%w: %s", formskema.ErrUnknownField, path)
		}
		cur = of.ad.object
		prefix = fp
	}
	return nil
}

// FieldPaths lists every leaf field path in declaration order, descending
// into nested objects.
func (o *objectSchema) FieldPaths() []string {
	var out []string
	for _, k := range o.keys {
		if child := o.fields[k].ad.object; child != nil {
			for _, sub := range child.FieldPaths() {
				out = append(out, formskema.JoinPath(k, sub))
			}
			continue
		}
		out = append(out, k)
	}
	return out
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.keys))
	var req []string
	for _, k := range o.keys {
		of := o.fields[k]
		if of.ad.jsonSchema == nil {
			props[k] = &js.Schema{}
		} else {
			s, err := of.ad.jsonSchema()
			if err != nil {
				return nil, err
			}
			if s == nil {
				s = &js.Schema{}
			}
			if of.applyDefault != nil {
				cp := *s
				cp.Default = of.defaultValue
				s = &cp
			}
			props[k] = s
		}
		if of.required && of.applyDefault == nil {
			req = append(req, k)
		}
	}
	out := &js.Schema{Type: "object", Title: o.title, Properties: props, Required: req}
	if o.unknownPolicy == formskema.UnknownStrict {
		out.AdditionalProperties = false
	}
	return out, nil
}

func (o *objectSchema) anyAdapter() AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return o.Parse(ctx, v) },
		jsonSchema: o.JSONSchema,
		message:    o.message,
		object:     o,
	}
}
