package validate

import "context"

type contextKey string

const wantWrappedErrorsKey contextKey = "wantWrappedErrors"

// WithWrappedError controls whether Validate wraps failures with
// errors.ErrValidation. Wrapping is on unless turned off here.
func WithWrappedError(ctx context.Context, wantWrapped bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, wantWrappedErrorsKey, wantWrapped)
}

func wantWrappedErrors(ctx context.Context) bool {
	value, ok := ctx.Value(wantWrappedErrorsKey).(bool)
	if ok {
		return value
	}

	return true
}
