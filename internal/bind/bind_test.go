package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfargs/nfargs/internal/state"
)

func TestStringValueLastOccurrenceWins(t *testing.T) {
	run := &state.Run{Options: []state.OptionValue{
		{Name: "--tag", Value: "v1"},
		{Name: "--tag", Value: "v2"},
	}}
	value, found := StringValue(run, []string{"--tag"})
	require.True(t, found)
	assert.Equal(t, "v2", value)
}

func TestBooleanValueIgnoresValueOptions(t *testing.T) {
	run := &state.Run{Options: []state.OptionValue{
		{Name: "--tag", Value: "v1"},
		{Name: "--verbose", Bool: true, IsSet: true},
	}}
	value, found := BooleanValue(run, []string{"--verbose"})
	require.True(t, found)
	assert.True(t, value)
}

func TestArrayValuesPreservesOrder(t *testing.T) {
	run := &state.Run{Options: []state.OptionValue{
		{Name: "--include", Value: "a"},
		{Name: "--include", Value: "b"},
		{Name: "--exclude", Value: "z"},
	}}
	assert.Equal(t, []string{"a", "b"}, ArrayValues(run, []string{"--include"}))
}

func TestNextPositionalSkipsExtras(t *testing.T) {
	ctx := &Context{Run: &state.Run{Positionals: []state.PositionalValue{
		{Value: "extra", Extra: true},
		{Value: "first"},
		{Value: "second"},
	}}}

	v, ok := NextPositional(ctx)
	require.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = NextPositional(ctx)
	require.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = NextPositional(ctx)
	assert.False(t, ok)
}

func TestRemainingRestConsumesFromCursor(t *testing.T) {
	ctx := &Context{Run: &state.Run{Positionals: []state.PositionalValue{
		{Value: "first"},
		{Value: "rest1", Extra: true},
		{Value: "rest2", Extra: true},
	}}}

	_, _ = NextPositional(ctx)
	assert.Equal(t, []string{"rest1", "rest2"}, RemainingRest(ctx))
}

func TestBindRunsTransformersInOrder(t *testing.T) {
	type target struct{ order []int }
	instance := &target{}

	transformers := []Transformer{
		func(ctx *Context) error { ctx.Instance.(*target).order = append(ctx.Instance.(*target).order, 1); return nil },
		func(ctx *Context) error { ctx.Instance.(*target).order = append(ctx.Instance.(*target).order, 2); return nil },
	}

	err := Bind(instance, state.Run{}, transformers, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, instance.order)
}
