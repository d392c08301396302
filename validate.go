package nfargs

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nfargs/nfargs/internal/validation"
)

// Validator is the external schema validator a Cli consults after binding
// and before executing a command (base spec §4.4: "external schema
// validator ... failures surface as ValidationError"). Swap Cli.Validator
// for a custom implementation to use a different validation engine or
// none at all.
type Validator interface {
	Validate(cmd any) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(cmd any) error

func (f ValidatorFunc) Validate(cmd any) error { return f(cmd) }

// playgroundValidator wraps go-playground/validator's struct-tag engine,
// the same library the teacher uses for its own "validate" tags.
type playgroundValidator struct {
	engine *validator.Validate
}

// DefaultValidator returns the validator installed on every new Cli: it
// runs go-playground/validator's Struct check over "validate" tags, plus
// any ValueValidator the command type implements itself.
func DefaultValidator() Validator {
	return &playgroundValidator{engine: validator.New()}
}

// NewValidatorWith lets a caller register custom validation functions on
// their own *validator.Validate instance before wiring it in.
func NewValidatorWith(engine *validator.Validate) Validator {
	return &playgroundValidator{engine: engine}
}

func (p *playgroundValidator) Validate(cmd any) error {
	if chooser, ok := cmd.(ValueValidator); ok {
		if err := chooser.IsValid(); err != nil {
			return err
		}
	}

	if err := p.engine.Struct(cmd); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			// Not a struct (or a nil pointer): nothing to validate.
			return nil
		}
		var fieldErrs validator.ValidationErrors
		if errorsAs(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return validation.Wrap(fe.Field(), fmt.Sprintf("%v", fe.Value()), fe)
		}
		return err
	}
	return nil
}

func errorsAs(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = ve
	return true
}

// ValueValidator lets a command type validate itself beyond what struct
// tags can express, retroported from the teacher's own ValueValidator
// convention (internal/validation).
type ValueValidator interface {
	IsValid() error
}

// ChoiceError reports that a string value fell outside a fixed set of
// legal choices. The matcher does not check choices (option specs do not
// carry them) and nothing in this package returns a ChoiceError; a
// command's own IsValid may return one.
type ChoiceError struct {
	Field   string
	Value   string
	Choices []string
}

func (e *ChoiceError) Error() string {
	return fmt.Sprintf("%q is not a valid value for %s (expected one of: %v)", e.Value, e.Field, e.Choices)
}
