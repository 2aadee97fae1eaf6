package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/turtacn/cadetops/pkg/errors"
)

// Validator holds the singleton instance of the validator.
var defaultValidator *validator.Validate

func init() {
	defaultValidator = validator.New()
	// Report fields by their JSON names so issues match the wire contract.
	defaultValidator.RegisterTagNameFunc(jsonFieldName)
}

// ValidateStruct validates a struct using the default validator.
// It returns an invalid_input DomainError describing the first failing field.
func ValidateStruct(s interface{}) errors.DomainError {
	err := defaultValidator.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.ErrInvalidInput("record", err.Error())
	}

	fe := validationErrors[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return errors.ErrMissingField(field)
	case "min", "max":
		return errors.ErrInvalidInput(field, formatValidationError(fe)).
			WithMetadata("value", fe.Value()).
			WithMetadata(fe.Tag(), fe.Param())
	default:
		return errors.ErrInvalidInput(field, formatValidationError(fe))
	}
}

// formatValidationError creates a user-friendly error message for a validation error.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("value %v must be at least %s", fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("value %v must be at most %s", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// ValidateNotEmpty checks if a string is not empty.
func ValidateNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

//Personal.AI order the ending
