package formskema

import (
	"context"
	"errors"

	js "github.com/reoring/formskema/jsonschema"
)

// Schema surfaces parsing, validation and JSON Schema projection for T.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Coerce -> Validate). It
	// returns Issues when validation fails.
	Parse(ctx context.Context, v any) (T, error)

	// Validate reports whether v would parse, without materializing T.
	Validate(ctx context.Context, v any) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// FieldChecker validates a single field addressed by a dot-joined path.
// Issues returned are keyed by the full path.
type FieldChecker interface {
	CheckField(ctx context.Context, path string, v any) error
}

// ErrUnknownField is returned by FieldChecker implementations for paths the
// schema does not declare.
var ErrUnknownField = errors.New("formskema: unknown field")

// CheckField runs a single-field check when s supports it.
func CheckField[T any](ctx context.Context, s Schema[T], path string, v any) error {
	fc, ok := any(s).(FieldChecker)
	if !ok {
		return singleIssue(CodeParseError, "schema does not support field checks")
	}
	return fc.CheckField(ctx, path, v)
}

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
