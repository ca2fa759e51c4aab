package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
)

// Validator adapts go-playground/validator to Echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// New creates a request validator
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags and converts failures into validation errors
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}
	return nil
}
