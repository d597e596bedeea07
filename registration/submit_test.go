package registration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/formskema/registration"
)

func TestLogSubmitter_OmitsPassword(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sub := registration.NewLogSubmitter(zap.New(core))

	rec, err := registration.Process(context.Background(), validCandidate(), registration.ModeStrict, sub)
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "registration submitted", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "alice", fields["username"])
	assert.Equal(t, "12345", fields["address.postalCode"])
	assert.NotContains(t, fields, "password")
	for _, v := range fields {
		assert.NotEqual(t, "secret1", v)
	}
}

func TestProcess_DoesNotSubmitInvalid(t *testing.T) {
	called := false
	sub := registration.SubmitterFunc(func(context.Context, registration.Record) error {
		called = true
		return nil
	})
	_, err := registration.Process(context.Background(), badCandidate(), registration.ModeLenient, sub)
	require.Error(t, err)
	assert.False(t, called)
}

func TestProcess_PropagatesSubmitError(t *testing.T) {
	boom := errors.New("boom")
	sub := registration.SubmitterFunc(func(context.Context, registration.Record) error { return boom })
	rec, err := registration.Process(context.Background(), validCandidate(), registration.ModeStrict, sub)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "alice", rec.Username)
}

func TestLogSubmitter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := registration.NewLogSubmitter(nil).Submit(ctx, registration.Record{})
	assert.ErrorIs(t, err, context.Canceled)
}
