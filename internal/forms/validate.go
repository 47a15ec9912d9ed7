package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// go-playground/validator/v10: struct validator shared by every form and
// request payload in the service.
var validate = validator.New()

// FieldError is one inline validation message, keyed by the failing field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidateStruct runs tag validation and flattens the result into inline
// field errors the client can render next to inputs. A nil slice means the
// payload is valid.
func ValidateStruct(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Reason: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gt", "gte":
		return "must be a positive value"
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
