package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks payload structs tagged with go-playground validate tags.
// Field names are reported by their json name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator reporting json field names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

// Check validates data and returns a client facing message, empty if data is valid.
//
// Missing required fields are reported together, e.g. "Name and message are required".
func (v *Validator) Check(data any) (string, error) {
	err := v.validate.Struct(data)
	if err == nil {
		return "", nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", err
	}

	var (
		required []string
		other    []string
	)

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			required = append(required, fe.Field())
		case "min":
			other = append(other, fmt.Sprintf("%s must be at least %s", capitalize(fe.Field()), fe.Param()))
		case "max":
			other = append(other, fmt.Sprintf("%s must be at most %s", capitalize(fe.Field()), fe.Param()))
		default:
			other = append(other, fmt.Sprintf("%s is invalid", capitalize(fe.Field())))
		}
	}

	msgs := make([]string, 0, len(other)+1)
	if len(required) > 0 {
		msgs = append(msgs, requiredMessage(required))
	}

	return strings.Join(append(msgs, other...), "; "), nil
}

func requiredMessage(fields []string) string {
	switch len(fields) {
	case 1:
		return capitalize(fields[0]) + " is required"
	default:
		head := strings.Join(fields[:len(fields)-1], ", ")
		return capitalize(head) + " and " + fields[len(fields)-1] + " are required"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
