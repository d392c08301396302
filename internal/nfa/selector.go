package nfa

import "github.com/nfargs/nfargs/internal/state"

// Selection is the selector's verdict: either a winning branch (possibly
// redirected to the help sentinel) or a failure describing why nothing
// survived.
type Selection struct {
	Branch       Branch
	CommandIndex int // state.HelpCommandIndex when help was requested
	OK           bool
}

// Select picks the single winner among terminal branches by the total
// priority order in base spec §4.3:
//  1. help capture
//  2. fewer unmatched requireds (always 0 among terminal branches)
//  3. longer consumed path
//  4. fewer positionals captured by rest vs named slots
//  5. lower registration index
func Select(terminal []Branch) Selection {
	if len(terminal) == 0 {
		return Selection{}
	}

	sawHelp := false
	for _, br := range terminal {
		if br.Run.SawHelp {
			sawHelp = true
			break
		}
	}

	best := terminal[0]
	for _, br := range terminal[1:] {
		if better(br, best) {
			best = br
		}
	}

	if sawHelp {
		return Selection{Branch: best, CommandIndex: state.HelpCommandIndex, OK: true}
	}
	return Selection{Branch: best, CommandIndex: best.Run.SelectedIndex, OK: true}
}

// better reports whether a outranks b by rules 3-5 (rules 1-2 are handled
// by the caller / are invariant across terminal branches).
func better(a, b Branch) bool {
	if len(a.Run.Path) != len(b.Run.Path) {
		return len(a.Run.Path) > len(b.Run.Path)
	}
	if a.Run.ExtraPositionalCount() != b.Run.ExtraPositionalCount() {
		return a.Run.ExtraPositionalCount() < b.Run.ExtraPositionalCount()
	}
	return a.Run.SelectedIndex < b.Run.SelectedIndex
}
