package nfa

import (
	"strings"

	"github.com/nfargs/nfargs/internal/state"
)

// helpNames are the two spellings that always trigger help capture,
// regardless of whether a command declares its own -h/--help option (base
// spec §4.6: "Two forms both trigger help: -h and --help appearing
// anywhere after the path").
var helpNames = map[string]bool{"-h": true, "--help": true}

// Build compiles the union of every command's grammar into a single NFA, as
// well as the data the suggester needs (literal edges are just regular
// Transitions with Literal set).
//
// Commands sharing a path prefix share the same PathWord nodes, so the
// frontier naturally narrows in parallel instead of picking a command
// early (base spec §4.1, ambiguity rule 1). A command with an empty path
// has its body attached directly to Initial, so it competes there with any
// other command's first path word (ambiguity rule 2).
func Build(commands []*state.CommandGrammar) *NFA {
	a := &NFA{}
	a.Initial = a.newNode(KindInitial)

	// pathTrie maps (node, literal word) -> child node, shared across every
	// command whose path passes through it.
	pathTrie := map[ID]map[string]ID{}

	childFor := func(from ID, word string) ID {
		children, ok := pathTrie[from]
		if !ok {
			children = map[string]ID{}
			pathTrie[from] = children
		}
		if id, ok := children[word]; ok {
			return id
		}
		id := a.newNode(KindPathWord)
		a.node(id).Label = word
		literal := word
		a.addTransition(from, Transition{
			Literal: literal,
			Tester: func(r state.Run, t state.Token) bool {
				return !r.IgnoreOptions && t.Kind == state.Positional && t.Value == literal
			},
			Reducer: func(r state.Run, t state.Token) state.Run {
				return r.WithPath(t.Value)
			},
			Next: id,
		})
		children[word] = id
		return id
	}

	for _, cmd := range commands {
		paths := cmd.Paths
		if len(paths) == 0 {
			paths = [][]string{{}}
		}
		for _, path := range paths {
			entry := a.Initial
			for _, word := range path {
				entry = childFor(entry, word)
			}
			buildBody(a, entry, cmd)
		}
	}

	return a
}

// buildBody attaches one command's option/positional/rest chain starting at
// entry, the node where its path finished matching.
func buildBody(a *NFA, entry ID, cmd *state.CommandGrammar) {
	slots := make([]ID, len(cmd.Positionals)+1)
	slots[0] = entry
	for i := 1; i < len(slots); i++ {
		kind := KindOptionOrPositional
		if i == len(slots)-1 {
			kind = restKind(cmd)
		}
		slots[i] = a.newNode(kind)
	}
	if len(slots) == 1 {
		a.node(entry).Kind = restKind(cmd)
	}

	for i, node := range slots {
		addOptionSelfLoop(a, node, cmd)
		addSeparatorSelfLoop(a, node)

		isRestSlot := i == len(slots)-1
		if isRestSlot {
			addRestTransitions(a, node, cmd)
		} else {
			addPositionalTransition(a, node, slots[i+1], cmd.Positionals[i])
		}

		addEOFTransition(a, node, i, slots, cmd)
	}
}

func restKind(cmd *state.CommandGrammar) Kind {
	if cmd.Proxy {
		return KindProxy
	}
	return KindRest
}

// addOptionSelfLoop lets a body node consume any of the command's declared
// options (long, short, batched shorts, inline values, negation) plus the
// universal -h/--help pseudo-option, without advancing to a new node.
// Proxy nodes don't get this loop: once a proxy is entered every token,
// option-shaped or not, is swallowed as positional text (base spec §4.2).
//
// An arity-1 option given without an inline value (`--foo` rather than
// `--foo=value`) needs its value from the *next* token, so it transitions
// to a dedicated pending node instead of self-looping; that node's only
// outgoing edge consumes whatever comes next as the value and returns here
// (base spec §4.2: "--foo value requires two tokens; between them no other
// transition may fire").
func addOptionSelfLoop(a *NFA, node ID, cmd *state.CommandGrammar) {
	if a.node(node).Kind == KindProxy {
		return
	}

	pending := a.newNode(KindOptionOrPositional)
	seen := map[string]bool{}

	// addSpelling wires one exact, known-in-advance option spelling as its
	// own Literal-tagged transition, so the suggester (internal/nfa/suggest.go)
	// can enumerate it; this mirrors childFor's one-transition-per-literal
	// path words (base spec invariant 9: suggestion completeness).
	addSpelling := func(literal string) {
		if seen[literal] {
			return
		}
		seen[literal] = true

		if optionAcceptsValue(cmd, literal) {
			a.addTransition(node, Transition{
				Literal: literal,
				Tester: func(r state.Run, t state.Token) bool {
					return !r.IgnoreOptions && t.Kind == state.OptionWithValue && t.Name == literal
				},
				Reducer: func(r state.Run, t state.Token) state.Run {
					return reduceOption(r, cmd, t)
				},
				Next: node,
			})
		}

		a.addTransition(node, Transition{
			Literal: literal,
			Tester: func(r state.Run, t state.Token) bool {
				return !r.IgnoreOptions && t.Kind == state.Option && t.Name == literal && !awaitsValue(cmd, literal)
			},
			Reducer: func(r state.Run, t state.Token) state.Run {
				return reduceOption(r, cmd, t)
			},
			Next: node,
		})

		a.addTransition(node, Transition{
			Literal: literal,
			Tester: func(r state.Run, t state.Token) bool {
				return !r.IgnoreOptions && t.Kind == state.Option && t.Name == literal && awaitsValue(cmd, literal)
			},
			Reducer: func(r state.Run, t state.Token) state.Run {
				return reduceOption(r, cmd, t)
			},
			Next: pending,
		})
	}

	for i := range cmd.Options {
		spec := &cmd.Options[i]
		for _, name := range spec.Names {
			addSpelling(name)
			if spec.Arity == state.ArityBoolean && strings.HasPrefix(name, "--") {
				addSpelling("--no-" + name[2:])
			}
		}
	}
	for name := range helpNames {
		addSpelling(name)
	}

	// Short batches ("-abc") compose several option identities into one
	// token at parse time and can't be enumerated as a single spelling, so
	// they fall back to untagged transitions; suggest.go simply won't
	// offer them as completions. A batch whose last letter is arity-1 with
	// nothing after it takes that option's value from the next token.
	a.addTransition(node, Transition{
		Tester: func(r state.Run, t state.Token) bool {
			return !r.IgnoreOptions && t.Kind == state.Option && isShortBatch(cmd, t.Name) && !awaitsValue(cmd, t.Name)
		},
		Reducer: func(r state.Run, t state.Token) state.Run {
			return reduceOption(r, cmd, t)
		},
		Next: node,
	})
	a.addTransition(node, Transition{
		Tester: func(r state.Run, t state.Token) bool {
			return !r.IgnoreOptions && t.Kind == state.Option && isShortBatch(cmd, t.Name) && awaitsValue(cmd, t.Name)
		},
		Reducer: func(r state.Run, t state.Token) state.Run {
			return reduceOption(r, cmd, t)
		},
		Next: pending,
	})

	a.addTransition(pending, Transition{
		Tester: func(r state.Run, t state.Token) bool {
			return t.Kind != state.StartOfInput && t.Kind != state.EndOfInput
		},
		Reducer: func(r state.Run, t state.Token) state.Run {
			return completePendingValue(r, t)
		},
		Next: node,
	})
}

// awaitsValue reports whether name (an arity-1 spelling or a short batch
// whose last letter is arity-1 with no trailing inline value) still needs
// its value from the next token.
func awaitsValue(cmd *state.CommandGrammar, name string) bool {
	if spec := findOption(cmd, name); spec != nil {
		return spec.Arity == state.ArityValue
	}
	if isShortBatch(cmd, name) {
		letters := name[1:]
		for i := 0; i < len(letters); i++ {
			spec := findOption(cmd, "-"+string(letters[i]))
			if spec == nil {
				return false
			}
			if spec.Arity == state.ArityValue {
				return i == len(letters)-1 // only awaits if no inline chars followed
			}
		}
	}
	return false
}

// completePendingValue fills in the value of the most recently appended
// option occurrence, which reduceOption left with IsSet/Value unpopulated
// as a placeholder when the option was seen without an inline value.
func completePendingValue(r state.Run, t state.Token) state.Run {
	out := r.Clone()
	last := len(out.Options) - 1
	out.Options[last].Value = t.String()
	return out
}

// addSeparatorSelfLoop lets a body node consume a literal "--", switching
// the run into IgnoreOptions mode so every later token is treated as
// positional text. Proxy nodes don't get this loop either: a proxy's own
// swallow-everything transition (addRestTransitions) already captures "--"
// verbatim, and letting both transitions fire on the same token would give
// the selector two terminal branches that disagree on whether "--" was kept.
func addSeparatorSelfLoop(a *NFA, node ID) {
	if a.node(node).Kind == KindProxy {
		return
	}

	a.addTransition(node, Transition{
		Literal: "--",
		Tester: func(r state.Run, t state.Token) bool {
			return !r.IgnoreOptions && t.Kind == state.Separator
		},
		Reducer: func(r state.Run, t state.Token) state.Run {
			return r.WithIgnoreOptions()
		},
		Next: node,
	})
}

func addPositionalTransition(a *NFA, node, next ID, spec state.PositionalSpec) {
	a.addTransition(node, Transition{
		Tester: func(r state.Run, t state.Token) bool {
			return isPositionalShaped(r, t)
		},
		Reducer: func(r state.Run, t state.Token) state.Run {
			return r.WithPositional(positionalText(t), false)
		},
		Next: next,
	})
}

func addRestTransitions(a *NFA, node ID, cmd *state.CommandGrammar) {
	if cmd.Proxy {
		a.addTransition(node, Transition{
			Tester: func(r state.Run, t state.Token) bool {
				return t.Kind != state.StartOfInput && t.Kind != state.EndOfInput
			},
			Reducer: func(r state.Run, t state.Token) state.Run {
				return r.WithPositional(proxyText(t), true)
			},
			Next: node,
		})
		return
	}

	a.addTransition(node, Transition{
		Tester: func(r state.Run, t state.Token) bool {
			return isPositionalShaped(r, t)
		},
		Reducer: func(r state.Run, t state.Token) state.Run {
			return r.WithPositional(positionalText(t), true)
		},
		Next: node,
	})
}

// addEOFTransition adds the guarded acceptance edge: reaching EndOfInput at
// slot index i only yields the command if every required positional up to
// and including i has been satisfied and, at the rest slot, the rest's
// minimum count has been met.
func addEOFTransition(a *NFA, node ID, slotIndex int, slots []ID, cmd *state.CommandGrammar) {
	isRestSlot := slotIndex == len(slots)-1
	commandIndex := cmd.Index

	terminal := a.newNode(KindTerminal)
	a.node(terminal).CommandIndex = commandIndex

	a.addTransition(node, Transition{
		Tester: func(r state.Run, t state.Token) bool {
			if t.Kind != state.EndOfInput {
				return false
			}
			if r.SawHelp {
				// A help request is accepted however far through the
				// command's positionals it got; the user is asking for
				// usage text, not trying to run the command.
				return true
			}
			if !isRestSlot && cmd.Positionals[slotIndex].Required {
				return false
			}
			if isRestSlot && cmd.Rest != nil && r.ExtraPositionalCount() < cmd.Rest.Required {
				return false
			}
			return true
		},
		Reducer: func(r state.Run, t state.Token) state.Run {
			return r.WithTerminal(commandIndex)
		},
		Next: terminal,
	})
}

// isPositionalShaped reports whether t can be consumed by a named or rest
// positional slot: a plain positional word, or (once "--" has been seen) any
// option-shaped word reclassified as literal text, or a second/subsequent
// "--" (base spec invariant 4: "repeating -- beyond the first occurrence is
// a no-op... the second -- is a positional").
func isPositionalShaped(r state.Run, t state.Token) bool {
	switch t.Kind {
	case state.Positional:
		return true
	case state.Separator:
		return r.IgnoreOptions
	case state.Option, state.OptionWithValue:
		return r.IgnoreOptions
	}
	return false
}

func positionalText(t state.Token) string {
	if t.Kind == state.Option {
		return t.Name
	}
	return t.String()
}

func proxyText(t state.Token) string {
	return t.String()
}

func optionAcceptsValue(cmd *state.CommandGrammar, name string) bool {
	spec := findOption(cmd, name)
	return spec != nil && spec.Arity == state.ArityValue
}

func findOption(cmd *state.CommandGrammar, name string) *state.OptionSpec {
	for i := range cmd.Options {
		if cmd.Options[i].Has(name) {
			return &cmd.Options[i]
		}
	}
	return nil
}

// isShortBatch reports whether name looks like "-abc" where every letter
// names an arity-0 short option of cmd, or where every letter up to the
// last names an arity-0 short option and the last names an arity-1 short
// option (whose remaining characters, if any, become its inline value;
// base spec §6: "-abcXYZ ⇒ -a -b -c=XYZ if -c has arity 1").
func isShortBatch(cmd *state.CommandGrammar, name string) bool {
	if len(name) < 3 || name[0] != '-' || name[1] == '-' {
		return false
	}
	letters := name[1:]
	for i := 0; i < len(letters); i++ {
		short := "-" + string(letters[i])
		spec := findOption(cmd, short)
		if spec == nil {
			return false
		}
		if spec.Arity == state.ArityValue {
			return true // remaining letters (if any) become this option's value
		}
	}
	return true
}

// reduceOption appends one (or, for a batched short flag, several) option
// occurrences to the branch.
func reduceOption(r state.Run, cmd *state.CommandGrammar, t state.Token) state.Run {
	switch t.Kind {
	case state.OptionWithValue:
		return r.WithOption(state.OptionValue{Name: canonicalName(cmd, t.Name), Value: t.Value})
	case state.Option:
		if helpNames[t.Name] {
			r = r.WithHelp()
		}
		if spec := findOption(cmd, t.Name); spec != nil {
			if spec.Arity == state.ArityBoolean {
				return r.WithOption(state.OptionValue{
					Name:  canonicalName(cmd, t.Name),
					Bool:  !spec.IsNegated(t.Name),
					IsSet: true,
				})
			}
			// Arity-1 option with no "=value": append a placeholder whose
			// Value is filled in by completePendingValue once the next
			// token (the value itself) is consumed.
			return r.WithOption(state.OptionValue{Name: canonicalName(cmd, t.Name)})
		}
		if helpNames[t.Name] {
			return r
		}
		if isShortBatch(cmd, t.Name) {
			return reduceShortBatch(r, cmd, t.Name)
		}
		return r
	}
	return r
}

func reduceShortBatch(r state.Run, cmd *state.CommandGrammar, name string) state.Run {
	letters := name[1:]
	for i := 0; i < len(letters); i++ {
		short := "-" + string(letters[i])
		spec := findOption(cmd, short)
		if spec.Arity == state.ArityValue {
			value := letters[i+1:]
			r = r.WithOption(state.OptionValue{Name: canonicalName(cmd, short), Value: value})
			return r
		}
		r = r.WithOption(state.OptionValue{Name: canonicalName(cmd, short), Bool: true, IsSet: true})
	}
	return r
}

// canonicalName returns the option's first declared spelling, so the binder
// can match occurrences against a single stable name regardless of which
// alias the user typed.
func canonicalName(cmd *state.CommandGrammar, typed string) string {
	if spec := findOption(cmd, typed); spec != nil && len(spec.Names) > 0 {
		return spec.Names[0]
	}
	return strings.TrimPrefix(typed, "")
}
