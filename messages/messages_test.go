package messages_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/formskema/messages"
)

type upperCatalog struct{}

func (upperCatalog) Message(code string) string { return "CODE:" + code }

func TestCatalog_DefaultAndOverride(t *testing.T) {
	assert.Equal(t, "Required", messages.T("required"))
	assert.Equal(t, "no_such_code", messages.T("no_such_code"))

	messages.SetCatalog(upperCatalog{})
	t.Cleanup(func() { messages.SetCatalog(nil) })
	assert.Equal(t, "CODE:required", messages.T("required"))
}

func TestOr_PrefersExplicitMessage(t *testing.T) {
	assert.Equal(t, "Street is required", messages.Or("Street is required", "too_short"))
	assert.Equal(t, "Value is too short", messages.Or("", "too_short"))
}
