package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/ErlanBelekov/grocery-api/internal/domain"
	"github.com/ErlanBelekov/grocery-api/internal/password"
	"github.com/go-playground/validator/v10"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= password.MaxBytes
	})

	return v
}

// validateStruct runs the struct rules and converts the first failure into a
// KindValidation error with a client-facing message.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return domain.NewValidationError(fieldMessage(fieldErrs[0]))
	}
	return fmt.Errorf("validate: %w", err)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email_shape":
		return "Invalid email format"
	case "bcrypt_len":
		return fmt.Sprintf("%s must be at most %d bytes", field, password.MaxBytes)
	case "min":
		if !isString(fe) {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		if fe.Param() == "1" {
			return field + " is required"
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if isString(fe) {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// isString reports whether the failing field is a string or a *string.
func isString(fe validator.FieldError) bool {
	if fe.Kind() == reflect.String {
		return true
	}
	t := fe.Type()
	return t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.String
}

// trimOptional trims s, preserving nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// absentIfEmpty maps "" to nil so create stores NULL rather than an empty string.
func absentIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
