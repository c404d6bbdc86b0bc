// Package validation runs go-playground/validator over request forms and turns
// its errors into one shopper-facing message per JSON field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Error lists field messages keyed by JSON field name
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Labels maps JSON field names to the words used in messages.
// Fields without a label use their JSON name.
type Labels map[string]string

// Struct validates v and returns *Error when any field fails, or nil
func Struct(v any, labels Labels) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out.Fields[field]; seen {
			continue
		}
		out.Fields[field] = message(fe, labels.of(field))
	}
	return out
}

func (l Labels) of(field string) string {
	if label, ok := l[field]; ok {
		return label
	}
	return field
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return "Unsupported " + strings.ToLower(label)
	default:
		return "Invalid " + strings.ToLower(label)
	}
}

// Fields extracts the field messages from err, or nil when err is not a
// validation error
func Fields(err error) map[string]string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
