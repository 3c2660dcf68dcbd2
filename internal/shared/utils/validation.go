package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/parlourcover/parlour/internal/shared/errors"
)

var validate *validator.Validate

// init initializes the validator
func init() {
	validate = validator.New()
	if err := RegisterValidations(validate); err != nil {
		panic(err)
	}
}

// RegisterValidations installs the JSON field names and custom tags on v.
// The router calls it for gin's binding validator as well.
func RegisterValidations(v *validator.Validate) error {
	// Use JSON tag names for validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("said", validateSAIDNumber)
}

// validateSAIDNumber checks the shape of a South African ID number: 13 digits.
// Date and checksum rules are left to the domain.
func validateSAIDNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError("Validation failed", err.Error())
	}
	if len(validationErrors) == 0 {
		return nil
	}

	return validationErrorsToAppError(validationErrors)
}

func validationErrorsToAppError(validationErrors validator.ValidationErrors) *errors.AppError {
	errorMessages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		errorMessages = append(errorMessages, getFieldErrorMessage(fieldError))
	}

	appErr := errors.NewValidationError(
		"Validation failed",
		strings.Join(errorMessages, "; "),
	)
	return appErr.WithField(validationErrors[0].Field())
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "numeric":
		return fmt.Sprintf("%s must be a valid number", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in the format %s", field, param)
	case "required_without":
		return fmt.Sprintf("%s is required when %s is not provided", field, param)
	case "said":
		return fmt.Sprintf("%s must be a valid 13-digit South African ID number", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, tag)
	}
}
