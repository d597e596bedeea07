package formskema

import (
	"fmt"
	"strings"
)

// PathRef builds dot-joined field paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	String() string
	Issue(code, msg string, kv ...any) Issue
}

type pathRef struct {
	parts []string
}

// Root returns the PathRef of the candidate itself.
func Root() PathRef { return &pathRef{} }

// At parses a dot-joined path into a PathRef.
func At(path string) PathRef {
	return &pathRef{parts: SplitPath(path)}
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return &pathRef{parts: append(append([]string{}, p.parts...), name)}
}

func (p *pathRef) String() string { return strings.Join(p.parts, ".") }

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.String(), Code: code, Message: msg, Params: m}
}

// JoinPath joins a parent path and a child key with '.'.
func JoinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}

// SplitPath splits a dot-joined path, dropping empty segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	parts := make([]string, 0, strings.Count(path, ".")+1)
	for _, p := range strings.Split(path, ".") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

// Rebase prefixes every issue path with base. Issues at the root of a child
// schema land exactly on base.
func Rebase(base string, iss Issues) Issues {
	if base == "" || len(iss) == 0 {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		it.Path = JoinPath(base, it.Path)
		out = append(out, it)
	}
	return out
}
