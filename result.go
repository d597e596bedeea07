package formskema

import "context"

// Result is the outcome of one validation attempt: either a typed value or
// the issues that withheld it.
type Result[T any] struct {
	Value  T
	Issues Issues
}

// OK reports whether validation succeeded.
func (r Result[T]) OK() bool { return len(r.Issues) == 0 }

// Err returns the issues as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return r.Issues
}

// Errors returns the first message per path; empty on success.
func (r Result[T]) Errors() map[string]string { return r.Issues.ByPath() }

// ResultOf folds a (value, error) pair into a Result. Errors that are not
// Issues become a single parse_error issue at the root.
func ResultOf[T any](v T, err error) Result[T] {
	if err == nil {
		return Result[T]{Value: v}
	}
	var zero T
	return Result[T]{Value: zero, Issues: toIssues(err)}
}

// Check parses v with s and returns the Result.
func Check[T any](ctx context.Context, s Schema[T], v any) Result[T] {
	return ResultOf(s.Parse(ctx, v))
}
