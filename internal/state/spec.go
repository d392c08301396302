package state

// Arity is the number of follow-up tokens an option consumes.
type Arity int

const (
	ArityBoolean Arity = 0
	ArityValue   Arity = 1
)

// OptionSpec declares one option of a command: a set of equivalent
// spellings (e.g. {"-t", "--tag"}) sharing one arity.
type OptionSpec struct {
	Names  []string
	Arity  Arity
	Hidden bool
	Array  bool
}

// Has reports whether name is one of this option's spellings, including the
// `--no-foo` negated form of an arity-0 long option.
func (o OptionSpec) Has(name string) bool {
	for _, n := range o.Names {
		if n == name {
			return true
		}
		if o.Arity == ArityBoolean && len(n) > 2 && n[:2] == "--" {
			if name == "--no-"+n[2:] {
				return true
			}
		}
	}
	return false
}

// IsNegated reports whether name is the `--no-foo` negated spelling of one
// of this option's long names.
func (o OptionSpec) IsNegated(name string) bool {
	if o.Arity != ArityBoolean {
		return false
	}
	for _, n := range o.Names {
		if len(n) > 2 && n[:2] == "--" && name == "--no-"+n[2:] {
			return true
		}
	}
	return false
}

// PositionalSpec declares one positional slot.
type PositionalSpec struct {
	Required bool
}

// RestSpec declares the trailing rest capture.
type RestSpec struct {
	Required int
}

// HelpCommandIndex is the sentinel command index selecting the help
// pseudo-command.
const HelpCommandIndex = -1

// CommandGrammar is the NFA builder's view of one registered command: just
// enough to compile its chain of nodes, independent of how the caller
// represents binding/payload information.
type CommandGrammar struct {
	Index       int
	Paths       [][]string
	Options     []OptionSpec
	Positionals []PositionalSpec
	Rest        *RestSpec
	Proxy       bool
}

// IsDefault reports whether this command has an empty path.
func (c *CommandGrammar) IsDefault() bool {
	for _, p := range c.Paths {
		if len(p) == 0 {
			return true
		}
	}
	return len(c.Paths) == 0
}
