package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var tagMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Must be a valid UUID",
	"numeric":  "Value must be numeric",
	"min":      "Value is too short or too small",
	"max":      "Value is too long or too large",
	"gte":      "Value is too small",
	"lte":      "Value is too large",
}

// Messages used when the failing tag carries a parameter, e.g. max=500.
var paramTagMessages = map[string]string{
	"min": "Must be at least %s characters",
	"max": "Must not exceed %s characters",
	"len": "Must be exactly %s characters",
	"gt":  "Must be greater than %s",
	"gte": "Must be greater than or equal to %s",
	"lt":  "Must be less than %s",
	"lte": "Must be less than or equal to %s",
}

func messageFor(fe validator.FieldError) string {
	if fe.Param() != "" {
		if format, ok := paramTagMessages[fe.Tag()]; ok {
			return fmt.Sprintf(format, fe.Param())
		}
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}

// fieldName resolves the client-facing name of a struct field from its json
// tag, then its form tag for query structs.
func fieldName(structType reflect.Type, name string) string {
	if structType == nil {
		return name
	}
	field, ok := structType.FieldByName(name)
	if !ok {
		return name
	}
	for _, key := range []string{"json", "form"} {
		tag, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return name
}

func structTypeOf(model any) reflect.Type {
	if model == nil {
		return nil
	}
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// FormatValidationErrors turns binding failures into per-field details. Errors
// that carry no field information, such as JSON syntax errors, yield nil.
func FormatValidationErrors(err error, model any) []ValidationErrorResponse {
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationErrorResponse{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
		}}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	structType := structTypeOf(model)
	out := make([]ValidationErrorResponse, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationErrorResponse{
			Field:   fieldName(structType, fe.StructField()),
			Message: messageFor(fe),
		})
	}
	return out
}
