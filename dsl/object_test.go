package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
)

func personSchema(strict bool) formskema.Schema[map[string]any] {
	addr := g.Object().
		Field("city", g.String().NonEmpty("City is required")).Required().
		Field("zip", g.String().Regex(`^\d{5}$`, "Invalid zip")).Required()
	b := g.Object().
		Field("name", g.String().Min(2, "Name too short")).Required().
		Field("age", g.Int().Coerce().Min(0, "Bad age").Message("Bad age")).Required().
		Field("nick", g.String()).Optional().
		Field("addr", g.SchemaOf(addr.MustBuild())).Default(map[string]any{})
	if strict {
		b.UnknownStrict()
	}
	return b.MustBuild()
}

func TestObject_ReportsEveryFieldInDeclarationOrder(t *testing.T) {
	ctx := context.Background()
	_, err := personSchema(false).Parse(ctx, map[string]any{
		"age":  "x",
		"name": "a",
		"addr": map[string]any{"zip": "1"},
	})
	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age", "addr.city", "addr.zip"}, iss.Paths())
	assert.Equal(t, map[string]string{
		"name":      "Name too short",
		"age":       "Bad age",
		"addr.city": "City is required",
		"addr.zip":  "Invalid zip",
	}, iss.ByPath())
}

func TestObject_MissingRequiredUsesFieldMessage(t *testing.T) {
	ctx := context.Background()
	_, err := personSchema(false).Parse(ctx, map[string]any{"age": 1, "name": nil})
	iss, _ := formskema.AsIssues(err)
	require.NotEmpty(t, iss)
	assert.Equal(t, "name", iss[0].Path)
	assert.Equal(t, formskema.CodeRequired, iss[0].Code)
	assert.Equal(t, "Name too short", iss[0].Message)
}

func TestObject_DefaultedNestedObjectStillValidates(t *testing.T) {
	ctx := context.Background()
	_, err := personSchema(false).Parse(ctx, map[string]any{"name": "Al", "age": 3})
	iss, _ := formskema.AsIssues(err)
	assert.Equal(t, []string{"addr.city", "addr.zip"}, iss.Paths())
}

func TestObject_ValidParseStripsUnknownAndCoerces(t *testing.T) {
	ctx := context.Background()
	out, err := personSchema(false).Parse(ctx, map[string]any{
		"name":  "Al",
		"age":   "40",
		"extra": true,
		"addr":  map[string]any{"city": "Oslo", "zip": "12345", "floor": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name": "Al",
		"age":  40,
		"addr": map[string]any{"city": "Oslo", "zip": "12345"},
	}, out)
}

func TestObject_UnknownStrictReportsSortedKeys(t *testing.T) {
	ctx := context.Background()
	_, err := personSchema(true).Parse(ctx, map[string]any{
		"name": "Al", "age": 1,
		"addr": map[string]any{"city": "Oslo", "zip": "12345"},
		"zz":   1, "aa": 2,
	})
	iss, _ := formskema.AsIssues(err)
	require.Len(t, iss, 2)
	assert.Equal(t, "aa", iss[0].Path)
	assert.Equal(t, "zz", iss[1].Path)
	assert.Equal(t, formskema.CodeUnknownKey, iss[0].Code)
}

func TestObject_FailFastStopsAtFirstField(t *testing.T) {
	ctx := formskema.WithFailFast(context.Background(), true)
	_, err := personSchema(false).Parse(ctx, map[string]any{"name": "a", "age": "x"})
	iss, _ := formskema.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "name", iss[0].Path)
}

func TestObject_NonObjectInput(t *testing.T) {
	_, err := personSchema(false).Parse(context.Background(), []any{1})
	iss, _ := formskema.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "", iss[0].Path)
	assert.Equal(t, formskema.CodeInvalidType, iss[0].Code)
}

func TestObject_CheckField(t *testing.T) {
	ctx := context.Background()
	s := personSchema(false)

	assert.NoError(t, formskema.CheckField(ctx, s, "name", "Bob"))
	assert.NoError(t, formskema.CheckField(ctx, s, "addr.zip", "12345"))

	err := formskema.CheckField(ctx, s, "addr.zip", "12")
	assert.Equal(t, map[string]string{"addr.zip": "Invalid zip"}, formskema.ByPath(err))

	err = formskema.CheckField(ctx, s, "name", nil)
	assert.Equal(t, map[string]string{"name": "Name too short"}, formskema.ByPath(err))

	// optional fields accept a missing value
	assert.NoError(t, formskema.CheckField(ctx, s, "nick", nil))

	for _, p := range []string{"nope", "name.first", "addr.street"} {
		err = formskema.CheckField(ctx, s, p, "x")
		assert.True(t, errors.Is(err, formskema.ErrUnknownField), p)
	}
}

func TestObject_FieldDeclaredTwicePanics(t *testing.T) {
	assert.Panics(t, func() {
		g.Object().Field("a", g.String()).Field("a", g.String())
	})
	assert.Panics(t, func() { g.Object().Field("", g.String()) })
}

func TestObject_BuildIsolatedFromLaterBuilderChanges(t *testing.T) {
	ctx := context.Background()
	b := g.Object().Field("a", g.String()).Optional()
	s := b.MustBuild()
	b.Require("a")
	assert.NoError(t, s.Validate(ctx, map[string]any{}))
}

func TestObject_JSONSchema(t *testing.T) {
	s, err := personSchema(true).JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"name", "age"}, s.Required)
	assert.Equal(t, false, s.AdditionalProperties)
	addr := s.Properties["addr"]
	require.NotNil(t, addr)
	assert.Equal(t, map[string]any{}, addr.Default)
	assert.Equal(t, []string{"city", "zip"}, addr.Required)
	assert.Equal(t, `^\d{5}$`, addr.Properties["zip"].Pattern)
}
