package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a form field name to its error messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	return strings.Join(parts, "; ")
}

// Validate checks a form struct and returns FieldErrors keyed by struct field
// name, or nil when the form is valid.
func Validate(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"__all__": {err.Error()}}
	}

	fe := FieldErrors{}
	for _, v := range verrs {
		fe.Add(v.Field(), message(v))
	}
	return fe
}

func message(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", v.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", v.Param())
	case "gt":
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}
