package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest reads the JSON body into v and checks its validate tags. On
// failure it writes the error response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return false
	}
	if fields := validationErrors(v); fields != nil {
		validationError(fields).WriteError(w)
		return false
	}
	return true
}

func validationError(fields map[string]string) *adminsdk.APIError {
	return &adminsdk.APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        adminsdk.ErrorCodeValidation,
		Description: "validation failed for some fields",
		Fields:      fields,
	}
}

// validationErrors returns field name to message, or nil when v is valid.
func validationErrors(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fieldError(fe)
	}
	return out
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date as %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
