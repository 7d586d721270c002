package checkout

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Details carries the customer identity fields collected at checkout. Values
// are validated and trimmed before submission and never persisted past it.
type Details struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Nic   string `validate:"min=5"`
}

// FieldErrors maps a field name ("name", "email", "nic") to its first error
// message.
type FieldErrors map[string]string

var fieldTags = map[string]string{
	"name":  "required",
	"email": "required,email",
	"nic":   "min=5",
}

var fieldMessages = map[string]string{
	"name":  "Full name is required",
	"email": "Enter a valid email address",
	"nic":   "NIC must be at least 5 characters",
}

// Normalized returns the details with surrounding whitespace trimmed.
func (d Details) Normalized() Details {
	return Details{
		Name:  strings.TrimSpace(d.Name),
		Email: strings.TrimSpace(d.Email),
		Nic:   strings.TrimSpace(d.Nic),
	}
}

// Validate applies the full-form gate: every field checked, the first error
// per field collected. On success it returns the trimmed details ready for
// submission; on failure submission must be blocked.
func Validate(d Details) (Details, FieldErrors) {
	normalized := d.Normalized()
	err := validate.Struct(normalized)
	if err == nil {
		return normalized, nil
	}

	fieldErrors := FieldErrors{}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			field := strings.ToLower(fieldErr.Field())
			if _, seen := fieldErrors[field]; !seen {
				fieldErrors[field] = fieldMessages[field]
			}
		}
	}
	if len(fieldErrors) == 0 {
		return normalized, nil
	}
	return Details{}, fieldErrors
}

// ValidateField checks a single field as the user edits it, returning the
// error message or "" when the value is acceptable.
func ValidateField(field, value string) string {
	tag, ok := fieldTags[field]
	if !ok {
		return ""
	}
	if err := validate.Var(strings.TrimSpace(value), tag); err != nil {
		return fieldMessages[field]
	}
	return ""
}
