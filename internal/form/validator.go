package form

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Values is flat form data: input name to current value.
type Values map[string]string

// CheckFunc returns an empty message when the field is valid. A non-nil
// error means the check itself could not run (for example the existence
// lookup failed on the network).
type CheckFunc func(ctx context.Context, v Values) (msg string, err error)

type Validator struct {
	Field string
	Check CheckFunc
}

// Errors maps field names to their messages. Empty means every check passed.
type Errors map[string]string

func (e Errors) OK() bool { return len(e) == 0 }

// Validate runs all validators concurrently over the same values.
func Validate(ctx context.Context, values Values, validators ...Validator) (Errors, error) {
	var (
		mu   sync.Mutex
		errs = Errors{}
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, v := range validators {
		v := v
		g.Go(func() error {
			msg, err := v.Check(gctx, values)
			if err != nil {
				return fmt.Errorf("validate %s: %w", v.Field, err)
			}
			if msg != "" {
				mu.Lock()
				errs[v.Field] = msg
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return errs, nil
}

// ValidateField runs only the validators registered for field, the way a
// single input is checked when it loses focus.
func ValidateField(ctx context.Context, field string, values Values, validators ...Validator) (string, error) {
	for _, v := range validators {
		if v.Field != field {
			continue
		}
		msg, err := v.Check(ctx, values)
		if err != nil || msg != "" {
			return msg, err
		}
	}
	return "", nil
}

// Required fails with msg when the field is empty.
func Required(field, msg string) Validator {
	return Validator{Field: field, Check: func(_ context.Context, v Values) (string, error) {
		if v[field] == "" {
			return msg, nil
		}
		return "", nil
	}}
}
