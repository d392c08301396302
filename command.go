package nfargs

import (
	"github.com/nfargs/nfargs/internal/bind"
)

// Transformer is a pure consumer of a bind.Context that writes a matched
// value into a command instance. It is the core unit the base spec's
// binder invokes in declaration order (§4.4).
type Transformer = bind.Transformer

// Commander is the interface a command instance must implement to be
// executed by Cli.Run (base spec §6). A nil error means "success, exit 0";
// a non-nil error maps to exit 1 unless it carries its own ExitCode().
type Commander interface {
	Execute(ctx *RunContext) error
}

// Command is a builder for one command's grammar plus its field bindings.
// T is the concrete Go type backing the command instance; Command[T]'s
// methods generalize the teacher's decorator-style field declaration into
// an explicit builder (base spec §9's design notes: "the equivalent is a
// builder pattern").
type Command[T any] struct {
	spec *CommandSpec
}

// NewCommand starts building a new command whose instance type is T. T
// must implement Commander to be run (not merely processed).
func NewCommand[T any]() *Command[T] {
	return &Command[T]{
		spec: &CommandSpec{
			NewInstance: func() any { return new(T) },
		},
	}
}

// Spec returns the underlying registration-time declaration, for
// Cli.Register.
func (c *Command[T]) Spec() *CommandSpec { return c.spec }

// Path adds one subcommand spelling this command answers to. Call it more
// than once to register aliases. A command with no Path call at all is the
// default command.
func (c *Command[T]) Path(words ...string) *Command[T] {
	c.spec.Paths = append(c.spec.Paths, append([]string(nil), words...))
	return c
}

// Boolean declares an arity-0 option under the given spellings, writing
// whichever occurrence's value last the winning branch carried into the
// field dst selects from the fresh instance.
func (c *Command[T]) Boolean(names []string, dst func(*T) *bool) *Command[T] {
	c.spec.Options = append(c.spec.Options, OptionSpec{Names: names, Arity: ArityBoolean})
	c.spec.Transformers = append(c.spec.Transformers, func(ctx *bind.Context) error {
		if value, found := bind.BooleanValue(ctx.Run, names); found {
			*dst(ctx.Instance.(*T)) = value
			return nil
		}
		if raw, ok := ctx.Defaults[names[0]]; ok {
			*dst(ctx.Instance.(*T)) = raw == "true" || raw == "1"
		}
		return nil
	})
	return c
}

// String declares an arity-1 option under the given spellings; the last
// occurrence wins (base spec §4.4).
func (c *Command[T]) String(names []string, dst func(*T) *string) *Command[T] {
	c.spec.Options = append(c.spec.Options, OptionSpec{Names: names, Arity: ArityValue})
	c.spec.Transformers = append(c.spec.Transformers, func(ctx *bind.Context) error {
		if value, found := bind.StringValue(ctx.Run, names); found {
			*dst(ctx.Instance.(*T)) = value
			return nil
		}
		if raw, ok := ctx.Defaults[names[0]]; ok {
			*dst(ctx.Instance.(*T)) = raw
		}
		return nil
	})
	return c
}

// Array declares an arity-1 option under the given spellings that
// accumulates every occurrence into an ordered list (base spec §4.4).
func (c *Command[T]) Array(names []string, dst func(*T) *[]string) *Command[T] {
	c.spec.Options = append(c.spec.Options, OptionSpec{Names: names, Arity: ArityValue, Array: true})
	c.spec.Transformers = append(c.spec.Transformers, func(ctx *bind.Context) error {
		*dst(ctx.Instance.(*T)) = bind.ArrayValues(ctx.Run, names)
		return nil
	})
	return c
}

// Positional declares one positional slot, required or optional, bound
// destructively to dst in declaration order (base spec §4.4).
func (c *Command[T]) Positional(required bool, dst func(*T) *string) *Command[T] {
	c.spec.Positionals = append(c.spec.Positionals, PositionalSpec{Required: required})
	c.spec.Transformers = append(c.spec.Transformers, func(ctx *bind.Context) error {
		if value, ok := bind.NextPositional(ctx); ok {
			*dst(ctx.Instance.(*T)) = value
		}
		return nil
	})
	return c
}

// Rest declares the trailing rest capture (zero or more, or at-least-N with
// required) bound to dst.
func (c *Command[T]) Rest(required int, dst func(*T) *[]string) *Command[T] {
	c.spec.Rest = &RestSpec{Required: required}
	c.spec.Transformers = append(c.spec.Transformers, func(ctx *bind.Context) error {
		*dst(ctx.Instance.(*T)) = bind.RemainingRest(ctx)
		return nil
	})
	return c
}

// Proxy declares this command a proxy: once its rest node is entered,
// every subsequent token, option-shaped or not, is swallowed verbatim into
// dst (base spec §4.2).
func (c *Command[T]) Proxy(dst func(*T) *[]string) *Command[T] {
	c.spec.Proxy = true
	c.spec.Rest = &RestSpec{}
	c.spec.Transformers = append(c.spec.Transformers, func(ctx *bind.Context) error {
		*dst(ctx.Instance.(*T)) = bind.RemainingRest(ctx)
		return nil
	})
	return c
}

// BindPath writes the matched path words into dst; unlike the option and
// positional bindings, this is usually registered once, first, so later
// transformers' ordering is unaffected by where Path() calls were made.
func (c *Command[T]) BindPath(dst func(*T) *[]string) *Command[T] {
	c.spec.Transformers = append([]Transformer{func(ctx *bind.Context) error {
		*dst(ctx.Instance.(*T)) = bind.Path(ctx.Run)
		return nil
	}}, c.spec.Transformers...)
	return c
}
