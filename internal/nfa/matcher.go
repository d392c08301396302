package nfa

import "github.com/nfargs/nfargs/internal/state"

// Branch is one live (node, state) pair in the frontier.
type Branch struct {
	Node ID
	Run  state.Run
}

// DeadEnd records, for error reporting, a branch that died at a given
// token index and the literal continuations that would have kept it alive.
type DeadEnd struct {
	TokenIndex int
	Consumed   []string // path words consumed so far, for display
	Expected   []string // literal tokens that would have extended this branch
}

// Result is everything the matcher learned about one argv run: the
// surviving terminal branches (candidates for the selector) and, when the
// whole frontier died (EndOfInput included), one dead end per branch that
// was alive just before; picking the deepest is left to the caller.
type Result struct {
	Terminal []Branch
	DeadEnds []DeadEnd
	DiedAt   int // token index frontier went empty, or len(tokens) if it reached EOF
}

// Run advances the frontier across tokens, starting from a.Initial with a
// fresh branch state, and returns the survivors (base spec §4.2).
func Run(a *NFA, tokens []state.Token) Result {
	frontier := []Branch{{Node: a.Initial, Run: state.Run{}}}
	var lastExpected []DeadEnd

	for i, tok := range tokens {
		if tok.Kind == state.StartOfInput {
			continue
		}

		next := make([]Branch, 0, len(frontier))
		for _, br := range frontier {
			node := a.node(br.Node)
			for _, tr := range node.Transitions {
				if tr.Tester(br.Run, tok) {
					next = append(next, Branch{Node: tr.Next, Run: tr.Reducer(br.Run, tok)})
				}
			}
		}

		if len(next) == 0 {
			lastExpected = expectedAt(a, frontier, i)
			return Result{DeadEnds: lastExpected, DiedAt: i}
		}
		frontier = dedup(next)
	}

	var terminal []Branch
	for _, br := range frontier {
		if br.Run.Terminal {
			terminal = append(terminal, br)
		}
	}

	return Result{Terminal: terminal, DiedAt: len(tokens)}
}

// expectedAt collects, for every branch alive just before the fatal token,
// the literal continuations that would have kept it alive — used to build
// a ParseError's suggestion text.
func expectedAt(a *NFA, frontier []Branch, tokenIndex int) []DeadEnd {
	out := make([]DeadEnd, 0, len(frontier))
	for _, br := range frontier {
		node := a.node(br.Node)
		var expect []string
		for _, tr := range node.Transitions {
			if tr.Literal != "" {
				expect = append(expect, tr.Literal)
			}
		}
		out = append(out, DeadEnd{
			TokenIndex: tokenIndex,
			Consumed:   append([]string(nil), br.Run.Path...),
			Expected:   expect,
		})
	}
	return out
}

// dedup merges branches with structurally identical identity (base spec
// §3: "(node, path length, positional count, options count) suffices").
// This keeps the frontier from growing without bound when multiple
// transitions land on equivalent states.
func dedup(branches []Branch) []Branch {
	type key struct {
		node ID
		path int
		pos  int
		opt  int
		ign  bool
	}
	seen := make(map[key]bool, len(branches))
	out := branches[:0]
	for _, br := range branches {
		k := key{br.Node, len(br.Run.Path), len(br.Run.Positionals), len(br.Run.Options), br.Run.IgnoreOptions}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, br)
	}
	return out
}
