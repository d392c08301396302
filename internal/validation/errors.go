// Package validation reformats go-playground/validator field errors into
// messages suited to a command-line invocation rather than a web form,
// adapted from the teacher's own internal/validation package.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError wraps one error go-playground/validator raised against a
// struct field, rewriting its message into CLI-appropriate phrasing.
type FieldError struct {
	fieldName    string
	fieldValue   string
	validatorErr error
}

// Wrap builds a FieldError from the field's name, its string
// representation, and the underlying validator error.
func Wrap(fieldName, fieldValue string, err error) *FieldError {
	return &FieldError{fieldName: fieldName, fieldValue: fieldValue, validatorErr: err}
}

func (err *FieldError) Unwrap() error { return err.validatorErr }

// Error implements the Error interface, replacing some identifiable
// validation errors with more efficient messages.
func (err *FieldError) Error() string {
	var tagname string

	retag := regexp.MustCompile(`the '.*' tag`)

	matched := retag.FindString(err.validatorErr.Error())
	if matched != "" {
		parts := strings.Split(matched, " ")
		if len(parts) > 1 {
			tagname = strings.Trim(parts[1], "'")
		}

		return fmt.Sprintf("`%s` is not a valid %s", err.fieldValue, tagname)
	}

	return strings.ReplaceAll(err.validatorErr.Error(), "''", fmt.Sprintf("'%s'", err.fieldName))
}
