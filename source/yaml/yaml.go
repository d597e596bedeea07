// Package yaml tokenizes YAML candidates with gopkg.in/yaml.v3.
//
// Only the first document of a stream is read. Scalars keep their YAML
// resolution: !!int and !!float become numbers, !!bool booleans, !!null null,
// everything else strings.
package yaml

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/formskema/internal/engine"
)

// maxAliasDepth bounds alias expansion so recursive anchors cannot loop.
const maxAliasDepth = 64

// Alias expansion may emit at most tokensPerByte tokens per input byte (and
// never fewer than minTokenBudget in total). Alias-free documents stay far
// below this.
const (
	tokensPerByte  = 4
	minTokenBudget = 4096
)

// ErrAliasExpansion reports a document whose aliases expand past the token
// budget derived from its size.
var ErrAliasExpansion = eng.IssueError{SimpleIssue: eng.SimpleIssue{
	Code:    "truncated",
	Message: "yaml: alias expansion exceeds the document size budget",
}}

type source struct {
	toks   []eng.Token
	pos    int
	size   int64
	budget int
	err    error
}

// NewReader reads the whole stream and wraps it into an engine.TokenSource.
func NewReader(r io.Reader) eng.TokenSource {
	data, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(data)
}

// NewBytes wraps a byte slice into an engine.TokenSource for YAML.
func NewBytes(b []byte) eng.TokenSource {
	s := &source{size: int64(len(b)), budget: max(len(b)*tokensPerByte, minTokenBudget)}
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&doc); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		s.err = err
		return s
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	s.err = s.flatten(root, 0)
	return s
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

// Location reports the document size; the whole input is read up front.
func (s *source) Location() int64 { return s.size }

func (s *source) emit(t eng.Token) {
	t.Offset = s.size
	s.toks = append(s.toks, t)
}

func (s *source) flatten(n *yaml.Node, aliasDepth int) error {
	if len(s.toks) > s.budget {
		return ErrAliasExpansion
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			s.emit(eng.Token{Kind: eng.KindNull})
			return nil
		}
		return s.flatten(n.Content[0], aliasDepth)
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth || n.Alias == nil {
			return fmt.Errorf("yaml: alias %q too deep or unresolved", n.Value)
		}
		return s.flatten(n.Alias, aliasDepth+1)
	case yaml.MappingNode:
		s.emit(eng.Token{Kind: eng.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yaml: line %d: non-scalar mapping key", k.Line)
			}
			s.emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := s.flatten(n.Content[i+1], aliasDepth); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndObject})
		return nil
	case yaml.SequenceNode:
		s.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := s.flatten(c, aliasDepth); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndArray})
		return nil
	case yaml.ScalarNode:
		s.emit(scalarToken(n))
		return nil
	default:
		s.emit(eng.Token{Kind: eng.KindNull})
		return nil
	}
}

func scalarToken(n *yaml.Node) eng.Token {
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull}
	case "!!bool":
		return eng.Token{Kind: eng.KindBool, Bool: strings.EqualFold(n.Value, "true")}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)}
		}
	case "!!float":
		if f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)}
		}
	}
	return eng.Token{Kind: eng.KindString, String: n.Value}
}
