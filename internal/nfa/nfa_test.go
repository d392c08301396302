package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfargs/nfargs/internal/state"
)

func tok(words ...string) []state.Token {
	out := []state.Token{{Kind: state.StartOfInput}}
	for _, w := range words {
		switch {
		case w == "--":
			out = append(out, state.Token{Kind: state.Separator, Name: "--", Value: "--"})
		case len(w) > 1 && w[0] == '-':
			out = append(out, state.Token{Kind: state.Option, Name: w})
		default:
			out = append(out, state.Token{Kind: state.Positional, Value: w})
		}
	}
	out = append(out, state.Token{Kind: state.EndOfInput})
	return out
}

func runSelect(t *testing.T, a *NFA, words ...string) Selection {
	t.Helper()
	res := Run(a, tok(words...))
	return Select(res.Terminal)
}

func TestSimpleCommandMatch(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index: 0,
		Paths: [][]string{{"build"}},
		Options: []state.OptionSpec{
			{Names: []string{"--verbose", "-v"}, Arity: state.ArityBoolean},
		},
		Positionals: []state.PositionalSpec{{Required: true}},
	}
	a := Build([]*state.CommandGrammar{grammar})

	sel := runSelect(t, a, "build", "--verbose", "target")
	require.True(t, sel.OK)
	assert.Equal(t, 0, sel.CommandIndex)
	assert.Equal(t, []string{"build"}, sel.Branch.Run.Path)
	require.Len(t, sel.Branch.Run.Options, 1)
	assert.True(t, sel.Branch.Run.Options[0].Bool)
	require.Len(t, sel.Branch.Run.Positionals, 1)
	assert.Equal(t, "target", sel.Branch.Run.Positionals[0].Value)
}

func TestMissingRequiredPositionalFails(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index:       0,
		Paths:       [][]string{{"build"}},
		Positionals: []state.PositionalSpec{{Required: true}},
	}
	a := Build([]*state.CommandGrammar{grammar})

	res := Run(a, tok("build"))
	assert.Empty(t, res.Terminal)
}

func TestValuedOptionTwoTokens(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index: 0,
		Paths: [][]string{{"tag"}},
		Options: []state.OptionSpec{
			{Names: []string{"--message", "-m"}, Arity: state.ArityValue},
		},
	}
	a := Build([]*state.CommandGrammar{grammar})

	sel := runSelect(t, a, "tag", "-m", "hello world")
	require.True(t, sel.OK)
	require.Len(t, sel.Branch.Run.Options, 1)
	assert.Equal(t, "hello world", sel.Branch.Run.Options[0].Value)
}

func TestShortBatchWithTrailingValue(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index: 0,
		Paths: [][]string{{"run"}},
		Options: []state.OptionSpec{
			{Names: []string{"-a"}, Arity: state.ArityBoolean},
			{Names: []string{"-b"}, Arity: state.ArityBoolean},
			{Names: []string{"-c"}, Arity: state.ArityValue},
		},
	}
	a := Build([]*state.CommandGrammar{grammar})

	sel := runSelect(t, a, "run", "-abcXYZ")
	require.True(t, sel.OK)
	require.Len(t, sel.Branch.Run.Options, 3)
	assert.Equal(t, "-a", sel.Branch.Run.Options[0].Name)
	assert.True(t, sel.Branch.Run.Options[0].Bool)
	assert.Equal(t, "-b", sel.Branch.Run.Options[1].Name)
	assert.Equal(t, "-c", sel.Branch.Run.Options[2].Name)
	assert.Equal(t, "XYZ", sel.Branch.Run.Options[2].Value)
}

func TestDoubleDashSecondIsPositional(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index: 0,
		Paths: [][]string{{"run"}},
		Rest:  &state.RestSpec{},
	}
	a := Build([]*state.CommandGrammar{grammar})

	sel := runSelect(t, a, "run", "--", "--", "pos")
	require.True(t, sel.OK)
	require.Len(t, sel.Branch.Run.Positionals, 2)
	assert.Equal(t, "--", sel.Branch.Run.Positionals[0].Value)
	assert.Equal(t, "pos", sel.Branch.Run.Positionals[1].Value)
}

func TestProxySwallowsOptionShapedTokens(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index: 0,
		Paths: [][]string{{"exec"}},
		Proxy: true,
		Rest:  &state.RestSpec{},
	}
	a := Build([]*state.CommandGrammar{grammar})

	sel := runSelect(t, a, "exec", "ls", "--all", "-l")
	require.True(t, sel.OK)
	got := []string{}
	for _, p := range sel.Branch.Run.Positionals {
		got = append(got, p.Value)
	}
	assert.Equal(t, []string{"ls", "--all", "-l"}, got)
}

func TestHelpAnywhereWins(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index: 0,
		Paths: [][]string{{"build"}},
	}
	a := Build([]*state.CommandGrammar{grammar})

	sel := runSelect(t, a, "build", "--help")
	require.True(t, sel.OK)
	assert.Equal(t, state.HelpCommandIndex, sel.CommandIndex)
}

func TestSharedPathPrefixDisambiguates(t *testing.T) {
	remoteAdd := &state.CommandGrammar{
		Index:       0,
		Paths:       [][]string{{"remote", "add"}},
		Positionals: []state.PositionalSpec{{Required: true}},
	}
	remote := &state.CommandGrammar{
		Index: 1,
		Paths: [][]string{{"remote"}},
	}
	a := Build([]*state.CommandGrammar{remoteAdd, remote})

	sel := runSelect(t, a, "remote", "add", "origin")
	require.True(t, sel.OK)
	assert.Equal(t, 0, sel.CommandIndex)

	sel2 := runSelect(t, a, "remote")
	require.True(t, sel2.OK)
	assert.Equal(t, 1, sel2.CommandIndex)
}

func TestSuggestLiteralOptions(t *testing.T) {
	grammar := &state.CommandGrammar{
		Index: 0,
		Paths: [][]string{{"build"}},
		Options: []state.OptionSpec{
			{Names: []string{"--verbose"}, Arity: state.ArityBoolean},
			{Names: []string{"--version"}, Arity: state.ArityBoolean},
		},
	}
	a := Build([]*state.CommandGrammar{grammar})

	withPrefix := tok("build", "--ver")
	out := Suggest(a, withPrefix[:len(withPrefix)-1], true)
	assert.ElementsMatch(t, []string{"--verbose", "--version"}, out)
}
