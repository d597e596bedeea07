package registration_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/registration"
)

func TestValidate_SharedSchemasConcurrently(t *testing.T) {
	t.Parallel()

	const workers = 16
	g, ctx := errgroup.WithContext(context.Background())
	for w := range workers {
		mode := registration.ModeStrict
		if w%2 == 1 {
			mode = registration.ModeLenient
		}
		g.Go(func() error {
			for range 50 {
				rec, err := registration.Validate(ctx, validCandidate(), mode)
				if err != nil {
					return fmt.Errorf("worker %d: valid candidate rejected: %w", w, err)
				}
				if rec.Age != 30 {
					return fmt.Errorf("worker %d: age = %d", w, rec.Age)
				}
				res := registration.Check(ctx, badCandidate(), mode)
				want := 7
				if mode == registration.ModeLenient {
					want = 5
				}
				if len(res.Issues) != want {
					return fmt.Errorf("worker %d: %d issues, want %d", w, len(res.Issues), want)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestForm_IndependentFormsConcurrently(t *testing.T) {
	t.Parallel()

	var g errgroup.Group
	forms := make([]*registration.Form, 8)
	for i := range forms {
		forms[i] = registration.NewForm(registration.ModeStrict)
		g.Go(func() error {
			ctx := context.Background()
			f := forms[i]
			for _, p := range registration.FieldPaths(f.Mode()) {
				if err := f.Set(ctx, p, "x"); err != nil {
					return err
				}
			}
			_, err := f.Submit(ctx)
			if _, ok := formskema.AsIssues(err); !ok {
				return fmt.Errorf("form %d: expected issues, got %v", i, err)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, f := range forms {
		assert.Equal(t, forms[0].Errors(), f.Errors())
	}
}
