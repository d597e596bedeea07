package registration

import (
	"context"

	"go.uber.org/zap"
)

// Submitter receives records that passed validation.
type Submitter interface {
	Submit(ctx context.Context, rec Record) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, rec Record) error

func (f SubmitterFunc) Submit(ctx context.Context, rec Record) error { return f(ctx, rec) }

// LogSubmitter logs accepted records instead of sending them anywhere. The
// password is never logged.
type LogSubmitter struct {
	Logger *zap.Logger
}

// NewLogSubmitter returns a LogSubmitter; a nil logger discards output.
func NewLogSubmitter(l *zap.Logger) *LogSubmitter {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogSubmitter{Logger: l}
}

func (s *LogSubmitter) Submit(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Logger.Info("registration submitted",
		zap.String("username", rec.Username),
		zap.String("email", rec.Email),
		zap.Int("age", rec.Age),
		zap.String("address.street", rec.Address.Street),
		zap.String("address.city", rec.Address.City),
		zap.String("address.postalCode", rec.Address.PostalCode),
	)
	return nil
}
