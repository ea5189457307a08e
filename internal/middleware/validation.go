package middleware

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// nicknamePattern allows letters, digits, underscore and dash
var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// RegisterValidators installs the custom binding validations referenced
// by the request DTOs. Must run before the router starts serving.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return nicknamePattern.MatchString(fl.Field().String())
	})
}

// FormatValidationError creates a human-readable message for one failed rule
func FormatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "nickname":
		return e.Field() + " may only contain letters, digits, underscore and dash"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// ValidationDetails flattens a binding error into per-field messages, or
// nil when the error is not a validation error.
func ValidationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FormatValidationError(fe))
	}
	return details
}
