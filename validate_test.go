package nfargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedCmd struct {
	Mode string `validate:"oneof=fast slow"`
}

func (c *taggedCmd) Execute(ctx *RunContext) error { return nil }

func TestDefaultValidatorRejectsBadTag(t *testing.T) {
	v := DefaultValidator()

	err := v.Validate(&taggedCmd{Mode: "medium"})
	require.Error(t, err)
}

func TestDefaultValidatorAcceptsGoodTag(t *testing.T) {
	v := DefaultValidator()

	err := v.Validate(&taggedCmd{Mode: "fast"})
	assert.NoError(t, err)
}

type selfValidating struct {
	ok bool
}

func (s *selfValidating) IsValid() error {
	if !s.ok {
		return assertionErrForTest
	}
	return nil
}

func (s *selfValidating) Execute(ctx *RunContext) error { return nil }

var assertionErrForTest = &AssertionError{Message: "not ok"}

func TestDefaultValidatorConsultsValueValidator(t *testing.T) {
	v := DefaultValidator()

	assert.Error(t, v.Validate(&selfValidating{ok: false}))
	assert.NoError(t, v.Validate(&selfValidating{ok: true}))
}
