package nfargs

import "github.com/nfargs/nfargs/internal/state"

// TokenKind classifies a single raw argv word (or a synthetic sentinel) for
// the matcher.
type TokenKind = state.TokenKind

const (
	StartOfInput    = state.StartOfInput
	EndOfInput      = state.EndOfInput
	Positional      = state.Positional
	Option          = state.Option
	OptionWithValue = state.OptionWithValue
	Separator       = state.Separator
)

// Token is the atomic unit consumed by the matcher.
type Token = state.Token

// looksLikeOption reports whether a raw argv word has the shape of a short
// or long option. A bare "-" is not an option (many tools use it to mean
// stdin), and "--" alone is the separator, handled separately.
func looksLikeOption(word string) bool {
	if len(word) < 2 || word[0] != '-' {
		return false
	}
	return word != "--"
}

// Tokenize turns a raw argv slice into the bracketed token stream the
// matcher expects: StartOfInput, one token per argv word (every standalone
// `--` becomes a Separator), EndOfInput.
//
// Tokenize performs *shape* classification only (Positional vs Option vs
// OptionWithValue vs Separator). It does not know about arities or proxy
// commands; that context-dependent re-classification (batched shorts,
// `--no-foo` negation, forcing-positional-after-proxy-or-after-"--") happens
// inside the NFA reducers, which see the whole branch state.
func Tokenize(argv []string) []Token {
	tokens := make([]Token, 0, len(argv)+2)
	tokens = append(tokens, Token{Kind: StartOfInput})

	for _, word := range argv {
		switch {
		case word == "--":
			tokens = append(tokens, Token{Kind: Separator, Name: "--", Value: "--"})
		case looksLikeOption(word):
			if idx := indexByte(word, '='); idx >= 0 {
				tokens = append(tokens, Token{Kind: OptionWithValue, Name: word[:idx], Value: word[idx+1:]})
			} else {
				tokens = append(tokens, Token{Kind: Option, Name: word})
			}
		default:
			tokens = append(tokens, Token{Kind: Positional, Value: word})
		}
	}

	tokens = append(tokens, Token{Kind: EndOfInput})
	return tokens
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
