package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError locates one invalid field of a request, e.g. Loc ["body", "email"].
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a request body against its validate tags and returns one
// FieldError per violation, or nil when the body is acceptable.
func Validate(body any) []FieldError {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Loc:  []string{"body", fe.Field()},
			Msg:  message(fe),
			Type: errorType(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "email":
		return "value is not a valid email address"
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}

func errorType(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value_error.missing"
	case "max":
		return "value_error.any_str.max_length"
	case "email":
		return "value_error.email"
	}
	return "value_error." + fe.Tag()
}
