package formskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeTooSmall      = "too_small"
	CodeTooShort      = "too_short"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"` // Dot-joined field path (for example: address.postalCode); empty for the root.
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
	// Params carries structured parameters (e.g., {"min":3, "got":2}).
	Params map[string]any `json:"params,omitempty"`
	Cause  error          `json:"-"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. too_short at username
		fmt.Fprintf(b, "%s at %s", it.Code, displayPath(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ByPath maps each path to the message of its first issue.
func (iss Issues) ByPath() map[string]string {
	out := make(map[string]string, len(iss))
	for _, it := range iss {
		if _, ok := out[it.Path]; !ok {
			out[it.Path] = it.Message
		}
	}
	return out
}

// Paths returns the distinct issue paths in first-seen order.
func (iss Issues) Paths() []string {
	seen := make(map[string]struct{}, len(iss))
	var out []string
	for _, it := range iss {
		if _, ok := seen[it.Path]; ok {
			continue
		}
		seen[it.Path] = struct{}{}
		out = append(out, it.Path)
	}
	return out
}

// Has reports whether any issue is keyed by path.
func (iss Issues) Has(path string) bool {
	for _, it := range iss {
		if it.Path == path {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ByPath is a shorthand for AsIssues followed by Issues.ByPath. Non-issue
// errors are reported under the root path.
func ByPath(err error) map[string]string {
	if err == nil {
		return map[string]string{}
	}
	if iss, ok := AsIssues(err); ok {
		return iss.ByPath()
	}
	return map[string]string{"": err.Error()}
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
