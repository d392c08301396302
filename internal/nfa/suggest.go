package nfa

import (
	"sort"

	"github.com/nfargs/nfargs/internal/state"
)

// Suggest returns the literal tokens that could legally extend tokens
// (which must NOT include a trailing EndOfInput sentinel; StartOfInput may
// be included or omitted).
//
// When partial is true, the last token in tokens is treated as a prefix:
// only suggestions extending that prefix are returned, and the prefix
// itself is not replayed through the matcher (base spec §4.5).
func Suggest(a *NFA, tokens []state.Token, partial bool) []string {
	var prefix string
	hasPrefix := false
	replay := tokens

	if partial && len(tokens) > 0 && tokens[len(tokens)-1].Kind != state.StartOfInput {
		last := tokens[len(tokens)-1]
		prefix = last.String()
		hasPrefix = true
		replay = tokens[:len(tokens)-1]
	}

	frontier := []Branch{{Node: a.Initial, Run: state.Run{}}}
	for _, tok := range replay {
		if tok.Kind == state.StartOfInput {
			continue
		}
		var next []Branch
		for _, br := range frontier {
			node := a.node(br.Node)
			for _, tr := range node.Transitions {
				if tr.Tester(br.Run, tok) {
					next = append(next, Branch{Node: tr.Next, Run: tr.Reducer(br.Run, tok)})
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		frontier = dedup(next)
	}

	seen := map[string]bool{}
	var out []string
	for _, br := range frontier {
		node := a.node(br.Node)
		for _, tr := range node.Transitions {
			if tr.Literal == "" {
				continue
			}
			if hasPrefix && !hasStringPrefix(tr.Literal, prefix) {
				continue
			}
			if !seen[tr.Literal] {
				seen[tr.Literal] = true
				out = append(out, tr.Literal)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return caseInsensitiveUpperFirstLess(out[i], out[j]) })
	return out
}

func hasStringPrefix(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)] == prefix
}

// caseInsensitiveUpperFirstLess orders strings case-insensitively, breaking
// ties so that the upper-case spelling sorts first (base spec §4.5:
// "sorted lexicographically with case-insensitive upper-first tiebreak").
func caseInsensitiveUpperFirstLess(a, b string) bool {
	la, lb := lower(a), lower(b)
	if la != lb {
		return la < lb
	}
	return a < b // upper-case bytes sort lower than lower-case, so plain '<' puts upper first
}

func lower(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + ('a' - 'A')
		}
	}
	return string(out)
}
