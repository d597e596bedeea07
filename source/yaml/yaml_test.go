package yaml_test

import (
	stdjson "encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/formskema/internal/engine"
	yamlsrc "github.com/reoring/formskema/source/yaml"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := eng.DecodeAnyFromSource(yamlsrc.NewReader(strings.NewReader(doc)))
	require.NoError(t, err)
	return v
}

func TestSource_Scalars(t *testing.T) {
	v := decode(t, `
name: alice
age: 30
ratio: 0.5
ok: true
nothing: null
tilde: ~
quoted: "12345"
`)
	assert.Equal(t, map[string]any{
		"name":    "alice",
		"age":     stdjson.Number("30"),
		"ratio":   stdjson.Number("0.5"),
		"ok":      true,
		"nothing": nil,
		"tilde":   nil,
		"quoted":  "12345",
	}, v)
}

func TestSource_NestedAndAliases(t *testing.T) {
	v := decode(t, `
home: &home
  city: Springfield
  postalCode: "12345"
work: *home
tags: [a, b]
`)
	m := v.(map[string]any)
	assert.Equal(t, m["home"], m["work"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])
}

func TestSource_FirstDocumentOnly(t *testing.T) {
	assert.Equal(t, map[string]any{"a": "x"}, decode(t, "a: x\n---\nb: y\n"))
}

func TestSource_EmptyDocument(t *testing.T) {
	_, err := eng.DecodeAnyFromSource(yamlsrc.NewBytes(nil))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSource_Errors(t *testing.T) {
	_, err := eng.DecodeAnyFromSource(yamlsrc.NewBytes([]byte("? [a, b]\n: c\n")))
	assert.Error(t, err)

	_, err = eng.DecodeAnyFromSource(yamlsrc.NewBytes([]byte("a: [unclosed\n")))
	assert.Error(t, err)
}

func TestSource_Location(t *testing.T) {
	doc := []byte("a: 1\n")
	s := yamlsrc.NewBytes(doc)
	assert.Equal(t, int64(len(doc)), s.Location())
}


// nestedAnchors builds a document where each anchor references the previous
// one fan times, so expansion grows as fan^levels.
func nestedAnchors(levels, fan int) []byte {
	var b strings.Builder
	b.WriteString("a0: &a0 x\n")
	for i := 1; i <= levels; i++ {
		fmt.Fprintf(&b, "a%d: &a%d [", i, i)
		for k := 0; k < fan; k++ {
			if k > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "*a%d", i-1)
		}
		b.WriteString("]\n")
	}
	return []byte(b.String())
}

func TestSource_AliasExpansionIsBounded(t *testing.T) {
	doc := nestedAnchors(9, 10)
	require.Less(t, len(doc), 512)

	_, err := eng.DecodeAnyFromSource(yamlsrc.NewBytes(doc))
	require.ErrorIs(t, err, yamlsrc.ErrAliasExpansion)
	var ie eng.IssueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "truncated", ie.Code)
}

func TestSource_SmallAliasReuseIsFine(t *testing.T) {
	v, err := eng.DecodeAnyFromSource(yamlsrc.NewBytes(nestedAnchors(2, 3)))
	require.NoError(t, err)
	assert.Len(t, v.(map[string]any)["a2"], 3)
}
