// Package validation flattens struct tag validation into a per-field
// violation map that templates can render next to each input.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Violations maps a form field name to a message code (see i18n).
type Violations map[string]string

func (v Violations) Empty() bool            { return len(v) == 0 }
func (v Violations) Has(field string) bool  { _, ok := v[field]; return ok }
func (v Violations) Get(field string) string { return v[field] }

// Struct runs the validate tags of a form struct and collects failures.
// Field keys are the lowercased Go field names.
func Struct(s any) Violations {
	v := make(Violations)
	err := validate.Struct(s)
	if err == nil {
		return v
	}
	var ferrs validator.ValidationErrors
	if errors.As(err, &ferrs) {
		for _, fe := range ferrs {
			v[strings.ToLower(fe.Field())] = code(fe)
		}
		return v
	}
	v["_form"] = "invalid"
	return v
}

func code(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "gt", "gte":
		return "must_be_positive"
	case "max", "min":
		return "out_of_range"
	case "email":
		return "invalid_email"
	default:
		return fe.Tag()
	}
}

// Required is a direct check for values assembled outside a form struct.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}
