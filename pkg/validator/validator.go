package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/firetourneys/arena/pkg/responses"
)

// ParseError converts a gin binding error into the field-level error list the
// API returns on 400s. Non-validator errors (malformed JSON and the like)
// collapse into a single "body" entry.
func ParseError(err error) []responses.FieldError {
	var fields []responses.FieldError
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fields = append(fields, responses.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageFor(fe),
			})
		}
		return fields
	}
	if err != nil {
		fields = append(fields, responses.FieldError{Field: "body", Message: err.Error()})
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation on the %q rule", fe.Tag())
	}
}
