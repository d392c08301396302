package nfargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeShapes(t *testing.T) {
	tokens := Tokenize([]string{"build", "--tag=v1", "--verbose", "-x", "--", "--not-a-flag"})

	assert.Equal(t, StartOfInput, tokens[0].Kind)
	assert.Equal(t, Positional, tokens[1].Kind)
	assert.Equal(t, "build", tokens[1].Value)

	assert.Equal(t, OptionWithValue, tokens[2].Kind)
	assert.Equal(t, "--tag", tokens[2].Name)
	assert.Equal(t, "v1", tokens[2].Value)

	assert.Equal(t, Option, tokens[3].Kind)
	assert.Equal(t, "--verbose", tokens[3].Name)

	assert.Equal(t, Option, tokens[4].Kind)
	assert.Equal(t, "-x", tokens[4].Name)

	assert.Equal(t, Separator, tokens[5].Kind)

	assert.Equal(t, Option, tokens[6].Kind)
	assert.Equal(t, "--not-a-flag", tokens[6].Name)

	assert.Equal(t, EndOfInput, tokens[len(tokens)-1].Kind)
}

func TestTokenizeBareDash(t *testing.T) {
	tokens := Tokenize([]string{"-"})
	assert.Equal(t, Positional, tokens[1].Kind)
	assert.Equal(t, "-", tokens[1].Value)
}
