package validation

import (
	domainErrors "moneroreq/internal/errors"
)

// Validator collects field errors in the order they are found. Only the
// first message per field is kept.
type Validator struct {
	Errors map[string]string
	order  []string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; exists {
		return
	}
	v.Errors[field] = message
	v.order = append(v.order, field)
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Fields returns the failing fields in the order they failed.
func (v *Validator) Fields() []string {
	return append([]string(nil), v.order...)
}

// Err returns nil when valid, otherwise an invalid-argument error for the
// first failing field.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	field := v.order[0]
	return domainErrors.InvalidArgument(field, v.Errors[field])
}
