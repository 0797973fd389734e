package validate

import "context"

// Func adapts a plain function to HasValidate.
func Func(f func() error) HasValidate {
	return &validateFunc{
		validate: f,
	}
}

// FuncWithContext adapts a context-aware function to HasValidateWithContext.
func FuncWithContext(f func(ctx context.Context) error) HasValidateWithContext {
	return &validateFuncWithContext{
		validate: f,
	}
}

type validateFunc struct {
	validate func() error
}

var _ HasValidate = (*validateFunc)(nil)

func (v *validateFunc) Validate() error {
	if v.validate != nil {
		return v.validate()
	}

	return nil
}

type validateFuncWithContext struct {
	validate func(ctx context.Context) error
}

var _ HasValidateWithContext = (*validateFuncWithContext)(nil)

func (v *validateFuncWithContext) Validate(ctx context.Context) error {
	if v.validate != nil {
		return v.validate(ctx)
	}

	return nil
}
