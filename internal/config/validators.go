package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// registerByteSize adds the "bytesize" rule for human-readable byte counts.
// It registers both the validation logic and a human-readable error message.
func registerByteSize(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"bytesize",
		validateByteSize,
		"{0} must be a byte size such as 512, 64KiB or 1GB",
	); err != nil {
		return fmt.Errorf("registering bytesize validation: %w", err)
	}

	return nil
}

// registerTagNames reports fields by their flag names.
func registerTagNames(validator *validator.Validator) {
	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}

		return name
	})
}

// validateByteSize checks that a string field parses as a byte count.
func validateByteSize(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	_, err := ParseSize(field.String())

	return err == nil
}
