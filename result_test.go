package formskema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	formskema "github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
)

func TestCheck(t *testing.T) {
	ctx := context.Background()
	s := g.String().Min(3, "too short")

	ok := formskema.Check[string](ctx, s, "abc")
	assert.True(t, ok.OK())
	assert.NoError(t, ok.Err())
	assert.Equal(t, "abc", ok.Value)
	assert.Empty(t, ok.Errors())

	bad := formskema.Check[string](ctx, s, "ab")
	assert.False(t, bad.OK())
	assert.Error(t, bad.Err())
	assert.Equal(t, map[string]string{"": "too short"}, bad.Errors())
}

func TestResultOf_PlainError(t *testing.T) {
	r := formskema.ResultOf(42, errors.New("boom"))
	assert.Equal(t, 0, r.Value)
	assert.Equal(t, formskema.CodeParseError, r.Issues[0].Code)
	assert.Equal(t, "boom", r.Issues[0].Message)
}

func TestCheckField_Unsupported(t *testing.T) {
	err := formskema.CheckField[string](context.Background(), g.String(), "a", "x")
	assert.Equal(t, formskema.CodeParseError, err.(formskema.Issues)[0].Code)
}

func TestFailFastContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, formskema.IsFailFast(ctx))
	assert.True(t, formskema.IsFailFast(formskema.WithFailFast(ctx, true)))
}
