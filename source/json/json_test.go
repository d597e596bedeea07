package json_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/formskema/internal/engine"
	jsonsrc "github.com/reoring/formskema/source/json"
)

func drain(t *testing.T, s eng.TokenSource) []eng.Token {
	t.Helper()
	var out []eng.Token
	for {
		tok, err := s.NextToken()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		tok.Offset = 0
		out = append(out, tok)
	}
}

func TestSource_Tokens(t *testing.T) {
	s := jsonsrc.NewBytes([]byte(`{"name":"alice","age":30,"ok":true,"tags":["a",null],"address":{"postalCode":"12345"}}`))
	assert.Equal(t, []eng.Token{
		{Kind: eng.KindBeginObject},
		{Kind: eng.KindKey, String: "name"},
		{Kind: eng.KindString, String: "alice"},
		{Kind: eng.KindKey, String: "age"},
		{Kind: eng.KindNumber, Number: "30"},
		{Kind: eng.KindKey, String: "ok"},
		{Kind: eng.KindBool, Bool: true},
		{Kind: eng.KindKey, String: "tags"},
		{Kind: eng.KindBeginArray},
		{Kind: eng.KindString, String: "a"},
		{Kind: eng.KindNull},
		{Kind: eng.KindEndArray},
		{Kind: eng.KindKey, String: "address"},
		{Kind: eng.KindBeginObject},
		{Kind: eng.KindKey, String: "postalCode"},
		{Kind: eng.KindString, String: "12345"},
		{Kind: eng.KindEndObject},
		{Kind: eng.KindEndObject},
	}, drain(t, s))
}

func TestSource_NumbersKeepText(t *testing.T) {
	toks := drain(t, jsonsrc.NewBytes([]byte(`[30.0, 1e2, -3]`)))
	require.Len(t, toks, 5)
	assert.Equal(t, "30.0", toks[1].Number)
	assert.Equal(t, "1e2", toks[2].Number)
	assert.Equal(t, "-3", toks[3].Number)
}

func TestSource_Location(t *testing.T) {
	doc := []byte(`{"a":1}`)
	s := jsonsrc.NewBytes(doc)
	drain(t, s)
	assert.Equal(t, int64(len(doc)), s.Location())
}
