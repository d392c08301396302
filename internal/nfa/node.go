// Package nfa compiles a set of command grammars into a single
// nondeterministic state machine and runs it over a token stream. It is the
// nondeterministic-automaton core described in the package's design: nodes
// and edges keyed by token classifiers, terminal nodes carrying the index
// of the command they accept.
package nfa

import "github.com/nfargs/nfargs/internal/state"

// Kind tags what role a Node plays during construction. Nodes are kept as a
// flat arena (slice) and referenced by index, never by pointer, so the
// graph has no cycles to manage by ownership.
type Kind int

const (
	KindInitial Kind = iota
	KindPathWord
	KindOptionOrPositional
	KindRest
	KindProxy
	KindTerminal
)

// ID identifies a Node within an NFA's arena.
type ID int

// Tester is a pure predicate over a token and the branch state proposing to
// consume it.
type Tester func(r state.Run, t state.Token) bool

// Reducer is a pure function producing the next branch state from the
// current one and the token being consumed. It is where appending to
// positionals/options, toggling IgnoreOptions, and latching Terminal all
// happen.
type Reducer func(r state.Run, t state.Token) state.Run

// Transition is one edge out of a Node. Literal is non-empty for edges the
// suggester can enumerate verbatim (path words, option spellings, "--");
// it is empty for edges that accept arbitrary positional text.
type Transition struct {
	Tester  Tester
	Reducer Reducer
	Next    ID
	Literal string
}

// Node is one state of the compiled automaton.
type Node struct {
	Kind        Kind
	Label       string // path word for KindPathWord, empty otherwise
	Transitions []Transition

	// CommandIndex is meaningful only for KindTerminal nodes produced by a
	// single command's own EOF edge; since every command gets its own
	// terminal node (so the selector can recover which command a branch
	// belongs to without extra bookkeeping), lookups don't need a separate
	// terminals map.
	CommandIndex int
}

// NFA is the compiled automaton for a full set of registered commands; the
// command index each terminal accepts lives on its Node.
type NFA struct {
	Nodes   []Node
	Initial ID
}

func (a *NFA) newNode(kind Kind) ID {
	a.Nodes = append(a.Nodes, Node{Kind: kind})
	return ID(len(a.Nodes) - 1)
}

func (a *NFA) node(id ID) *Node {
	return &a.Nodes[id]
}

func (a *NFA) addTransition(from ID, t Transition) {
	a.Nodes[from].Transitions = append(a.Nodes[from].Transitions, t)
}
