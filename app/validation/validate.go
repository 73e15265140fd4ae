package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Struct validates v against its `validate` struct tags.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// Var validates a single value against a tag expression.
func Var(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
