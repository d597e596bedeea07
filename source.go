package formskema

import (
	"io"

	eng "github.com/reoring/formskema/internal/engine"
	jsonsrc "github.com/reoring/formskema/source/json"
	yamlsrc "github.com/reoring/formskema/source/yaml"
)

// TokenKind enumerates document token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; schemas decide how to interpret it.
	Bool   bool
	Offset int64
}

// Source abstracts over document inputs. NextToken returns io.EOF after the
// last token.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return &engineSourceAdapter{inner: jsonsrc.NewReader(r)} }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return &engineSourceAdapter{inner: jsonsrc.NewBytes(b)} }

// YAMLReader wraps an io.Reader as a YAML Source (first document only).
func YAMLReader(r io.Reader) Source { return &engineSourceAdapter{inner: yamlsrc.NewReader(r)} }

// YAMLBytes wraps a byte slice as a YAML Source (first document only).
func YAMLBytes(b []byte) Source { return &engineSourceAdapter{inner: yamlsrc.NewBytes(b)} }

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// tokenSourceAdapter exposes a caller-provided Source to the engine.
type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}
