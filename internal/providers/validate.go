package providers

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError names the field that blocks a test or save action.
type ValidationError struct {
	Provider string
	Field    string
	Label    string
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks values against the field rules of d and the role syntax
// of its role field. It never touches the network.
func Validate(d Descriptor, values Values) error {
	v := validatorInstance()
	for _, f := range d.Fields {
		if strings.TrimSpace(f.Rule) == "" {
			continue
		}
		value := strings.TrimSpace(values[f.Key])
		if err := v.Var(value, f.Rule); err != nil {
			return &ValidationError{
				Provider: d.Name,
				Field:    f.Key,
				Label:    f.Label,
				Message:  ruleMessage(f, err),
			}
		}
	}

	if d.RoleField != "" && d.RoleFormat != RolesNone {
		if _, err := ParseRoles(d.RoleFormat, values[d.RoleField]); err != nil {
			f, _ := d.Field(d.RoleField)
			return &ValidationError{Provider: d.Name, Field: d.RoleField, Label: f.Label, Message: err.Error()}
		}
	}
	return nil
}

func ruleMessage(f Field, err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Sprintf("%s: %v", f.Label, err)
	}

	switch fieldErrs[0].Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f.Label)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", f.Label)
	default:
		return fmt.Sprintf("%s failed the %q check", f.Label, fieldErrs[0].Tag())
	}
}
