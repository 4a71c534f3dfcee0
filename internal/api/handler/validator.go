package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate satisfies the echo.Validator interface. Failures come back as a
// domain.ValidationError so the error handler can render the field map.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &domain.ValidationError{}
	for _, fe := range ve {
		out.Add(fieldName(fe), fieldMessage(fe))
	}
	return out
}

// fieldName prefers the json tag spelling over the Go field name.
func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

// fieldMessage converts a single ValidationError into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
