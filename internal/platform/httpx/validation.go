package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var moneyPattern = regexp.MustCompile(`^-?\d{1,6}(\.\d{1,2})?$`)

// NewValidator returns a validator that reports json field names and knows the
// `notblank` and `money` (at most 8 digits, 2 of them decimals) rules.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return moneyPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate runs v against s and converts failures into ordered FieldErrors.
func Validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return FromValidation(validationErrs)
	}
	return err
}

// FromValidation translates validator errors, preserving struct field order.
func FromValidation(errs validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, 0, len(errs))
	for _, fe := range errs {
		code, detail := describe(fe)
		if out.Has(fe.Field()) {
			continue
		}
		out.Add(fe.Field(), code, detail)
	}
	return out
}

func describe(fe validator.FieldError) (string, string) {
	textual := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_without":
		return "required", "This field is required."
	case "email":
		return "invalid", "Enter a valid email address."
	case "max", "lte":
		if textual {
			return "max_length", fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return "max_value", fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min", "gte":
		if textual {
			return "min_length", fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return "min_value", fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return "min_value", fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "notblank":
		return "blank", "This field may not be blank."
	case "money":
		return "invalid", "Ensure that there are no more than 8 digits in total and no more than 2 decimal places."
	default:
		return "invalid", "Invalid value."
	}
}
