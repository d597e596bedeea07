package formskema

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/formskema/internal/engine"
)

// ParseFrom is the document entry point. It decodes the Source into a
// candidate under the enforcement options and delegates to the Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, _, err := DecodeCandidate(src, opt)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

// DecodeCandidate decodes a Source into a candidate value (maps, slices,
// json.Number, strings, bools, nil). Warnings, such as duplicate keys under
// Warn severity, are returned alongside the value.
func DecodeCandidate(src Source, opt ParseOpt) (any, Issues, error) {
	var warnings Issues
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			warnings = AppendIssues(warnings, Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		},
		FailFast: opt.FailFast,
	})
	v, err := eng.DecodeAnyFromSource(enforced)
	if err != nil {
		return nil, warnings, toIssues(err)
	}
	return v, warnings, nil
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return ParseOpt{}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return AppendIssues(nil, Issue{Code: CodeParseError, Message: "unexpected end of input", Cause: err})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err})
}

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Code: code, Message: msg}) }
