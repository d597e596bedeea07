package registration

import (
	"context"

	formskema "github.com/reoring/formskema"
)

// Validate checks a whole candidate. On success it returns the normalized
// Record; otherwise the error is formskema.Issues with one entry per failing
// field, keyed by dot path.
func Validate(ctx context.Context, c Candidate, mode Mode) (Record, error) {
	return SchemaFor(mode).Parse(ctx, c)
}

// Check is Validate folded into a formskema.Result.
func Check(ctx context.Context, c Candidate, mode Mode) formskema.Result[Record] {
	return formskema.Check(ctx, SchemaFor(mode), c)
}

// ValidateDocument decodes a JSON or YAML document from src and validates it.
// Decoding faults are reported as issues just like rule failures.
func ValidateDocument(ctx context.Context, src formskema.Source, mode Mode, opts ...formskema.ParseOpt) (Record, error) {
	return formskema.ParseFrom(ctx, SchemaFor(mode), src, opts...)
}

// FieldPaths lists every leaf field path of the record in declaration order.
func FieldPaths(mode Mode) []string {
	return SchemaFor(mode).(interface{ FieldPaths() []string }).FieldPaths()
}

// Process validates c and, on success, hands the Record to sub. Rule failures
// are returned as Issues without calling sub.
func Process(ctx context.Context, c Candidate, mode Mode, sub Submitter) (Record, error) {
	rec, err := Validate(ctx, c, mode)
	if err != nil {
		return Record{}, err
	}
	if err := sub.Submit(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}
