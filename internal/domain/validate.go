package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

//nolint:gochecknoglobals
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return v
}

// Validate checks a request struct against its `validate` tags.
// Failures wrap ErrInvalidInput and name the offending fields.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
			return fe.Field()
		})

		return fmt.Errorf("%w: missing required data: %s", ErrInvalidInput, strings.Join(fields, ", "))
	}

	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
