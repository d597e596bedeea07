package registration

import (
	"context"
	"fmt"
	"maps"
	"strings"

	formskema "github.com/reoring/formskema"
)

// Form is the incremental calling convention: it holds the values entered so
// far and one error message per field path. Set re-validates a single field;
// Submit re-validates everything with the same rules as Validate.
//
// A Form is not safe for concurrent use.
type Form struct {
	mode   Mode
	schema formskema.Schema[Record]
	paths  map[string]struct{}
	values map[string]any
	errors map[string]string
}

// NewForm returns an empty form for mode.
func NewForm(mode Mode) *Form {
	f := &Form{mode: mode, schema: SchemaFor(mode), paths: map[string]struct{}{}}
	for _, p := range FieldPaths(mode) {
		f.paths[p] = struct{}{}
	}
	f.Reset()
	return f
}

// Mode returns the form's mode.
func (f *Form) Mode() Mode { return f.mode }

// Set stores v at the leaf field path and re-validates only that field. The
// field's error entry is set on failure and cleared on success; entries of
// other fields are untouched. A nil v clears the stored value and is checked
// as missing. Paths that are not leaf fields return formskema.ErrUnknownField.
func (f *Form) Set(ctx context.Context, path string, v any) error {
	if _, ok := f.paths[path]; !ok {
		return fmt.Errorf("%w: %s", formskema.ErrUnknownField, path)
	}
	if v == nil {
		delete(f.values, path)
	} else {
		f.values[path] = v
	}
	err := formskema.CheckField(ctx, f.schema, path, v)
	if err == nil {
		delete(f.errors, path)
		return nil
	}
	iss, ok := formskema.AsIssues(err)
	if !ok {
		return err
	}
	if iss.Has(path) {
		f.errors[path] = iss.ByPath()[path]
	} else {
		f.errors[path] = iss[0].Message
	}
	return nil
}

// Value returns the stored value at path.
func (f *Form) Value(path string) (any, bool) {
	v, ok := f.values[path]
	return v, ok
}

// Error returns the current message for path.
func (f *Form) Error(path string) (string, bool) {
	msg, ok := f.errors[path]
	return msg, ok
}

// Errors returns a copy of the error map.
func (f *Form) Errors() map[string]string { return maps.Clone(f.errors) }

// Valid reports whether no field currently has an error. Fields never Set
// are not checked until Submit.
func (f *Form) Valid() bool { return len(f.errors) == 0 }

// Candidate assembles the stored values into a nested candidate.
func (f *Form) Candidate() Candidate {
	out := Candidate{}
	for path, v := range f.values {
		parts := strings.Split(path, ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}
	return out
}

// Submit validates the assembled candidate as a whole and replaces the error
// map with the result. It accepts exactly what Validate accepts.
func (f *Form) Submit(ctx context.Context) (Record, error) {
	rec, err := Validate(ctx, f.Candidate(), f.mode)
	if err != nil {
		f.errors = formskema.ByPath(err)
		return Record{}, err
	}
	clear(f.errors)
	return rec, nil
}

// Reset drops all values and errors.
func (f *Form) Reset() {
	f.values = map[string]any{}
	f.errors = map[string]string{}
}
