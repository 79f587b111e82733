package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"clinicbook/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Check returns a *domain.ValidationError when v fails its `validate` tags.
func Check(v interface{}) error {
	if fields := Validate(v); fields != nil {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
