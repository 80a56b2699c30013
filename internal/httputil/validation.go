package httputil

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their form name, then their JSON name, so
// error maps line up with the inputs that produced them.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Validate runs the struct's validate tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// FieldErrors maps each failing field to a user-facing message. It returns
// nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fe.Field() + " wajib diisi."
		case "email":
			out[fe.Field()] = "Format email tidak valid."
		case "max":
			out[fe.Field()] = fe.Field() + " harus kurang dari " + fe.Param() + " karakter."
		case "oneof":
			out[fe.Field()] = fe.Field() + " harus salah satu dari " + fe.Param() + "."
		case "gte", "lte", "min":
			out[fe.Field()] = fe.Field() + " di luar rentang yang diizinkan."
		default:
			out[fe.Field()] = "Format tidak valid."
		}
	}
	return out
}
