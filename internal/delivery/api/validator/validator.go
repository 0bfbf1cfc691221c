// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/errors"

	govalidator "github.com/go-playground/validator/v10"
)

// Validator validates request DTOs tagged with `validate:"..."`.
type Validator struct {
	validate *govalidator.Validate
}

// New creates a validator that reports fields by their json name.
func New() *Validator {
	validate := govalidator.New(govalidator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Validator{validate: validate}
}

// Validate implements echo.Validator. Field failures become a VALIDATION_FAILED
// error whose details list every offending field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := errors.AsType[govalidator.ValidationErrors](err)
	if !ok {
		return errors.Wrap(err, "validate request")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(messages, "; "))
}

func describe(fe govalidator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: field required", fe.Field())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s: must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %q validation", fe.Field(), fe.Tag())
	}
}

// jsonFieldName falls back to query or form tags so query-string DTOs report the parameter name.
func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}
