package nfargs

import "github.com/nfargs/nfargs/internal/state"

// Arity is the number of follow-up tokens an option consumes.
type Arity = state.Arity

const (
	ArityBoolean = state.ArityBoolean
	ArityValue   = state.ArityValue
)

// OptionSpec declares one option of a command: a set of equivalent
// spellings (e.g. {"-t", "--tag"}) sharing one arity. Names within one
// command must not collide; across commands the same name may be reused
// with compatible arity, since the NFA carries every command's options in
// parallel until a token disambiguates them.
type OptionSpec = state.OptionSpec

// PositionalSpec declares one positional slot.
type PositionalSpec = state.PositionalSpec

// RestSpec declares the trailing rest capture: zero or more (or, with
// Required > 0, at-least-N) remaining positionals collected into a list.
type RestSpec = state.RestSpec

// HelpCommandIndex is the sentinel command index selecting the help
// pseudo-command (base spec §3).
const HelpCommandIndex = state.HelpCommandIndex

// CommandSpec is the registration-time declaration of one command: the
// grammar the NFA builder compiles, plus the opaque payload and transformer
// list the binder later consults.
type CommandSpec struct {
	// Index is assigned by Cli.Register in registration order; it is the
	// selector's final tiebreaker and the terminal node's identity.
	Index int

	// Paths lists every subcommand spelling this command answers to. A
	// command with no entries (or a single empty path) is the default
	// command.
	Paths [][]string

	Options     []OptionSpec
	Positionals []PositionalSpec
	Rest        *RestSpec
	Proxy       bool

	// Payload is opaque user data stored with the command; neither the
	// matcher nor the binder reads it.
	Payload any

	// Transformers run in declaration order against the winning branch to
	// populate a freshly constructed command instance (base spec §4.4).
	Transformers []Transformer

	// NewInstance constructs the zero-valued command instance that
	// Transformers then populate.
	NewInstance func() any
}

// IsDefault reports whether this command has an empty path.
func (c *CommandSpec) IsDefault() bool {
	for _, p := range c.Paths {
		if len(p) == 0 {
			return true
		}
	}
	return len(c.Paths) == 0
}

func (c *CommandSpec) grammar() *state.CommandGrammar {
	return &state.CommandGrammar{
		Index:       c.Index,
		Paths:       c.Paths,
		Options:     c.Options,
		Positionals: c.Positionals,
		Rest:        c.Rest,
		Proxy:       c.Proxy,
	}
}
