package jsonschema_test

import (
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/formskema/jsonschema"
)

func TestDocument(t *testing.T) {
	minLen := 3
	s := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"username": {Type: "string", MinLength: &minLen, ErrorMessage: "too short"},
		},
		Required:             []string{"username"},
		AdditionalProperties: false,
	}
	out, err := jsonschema.Document(s, "Registration")
	require.NoError(t, err)
	assert.Empty(t, s.Schema, "input is not modified")

	var doc map[string]any
	require.NoError(t, j.Unmarshal(out, &doc))
	assert.Equal(t, jsonschema.Draft, doc["$schema"])
	assert.Equal(t, "Registration", doc["title"])
	assert.Equal(t, []any{"username"}, doc["required"])
	assert.Equal(t, false, doc["additionalProperties"])
	user := doc["properties"].(map[string]any)["username"].(map[string]any)
	assert.Equal(t, float64(3), user["minLength"])
	assert.Equal(t, "too short", user["errorMessage"])
	assert.NotContains(t, user, "pattern")
}
