package nfargs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGreet struct {
	name string
	loud bool
	who  string
}

func (g *testGreet) Execute(ctx *RunContext) error {
	msg := "hi " + g.who
	if g.loud {
		msg += "!"
	}
	_, err := ctx.Stdout.Write([]byte(msg))
	return err
}

func newTestGreetCli() *Cli {
	cli := NewCli()
	cmd := NewCommand[testGreet]().Path("greet")
	cmd.String([]string{"--name", "-n"}, func(g *testGreet) *string { return &g.name })
	cmd.Boolean([]string{"--loud", "-l"}, func(g *testGreet) *bool { return &g.loud })
	cmd.Positional(true, func(g *testGreet) *string { return &g.who })
	cli.Register(cmd.Spec())
	return cli
}

func TestCliProcessBindsCommand(t *testing.T) {
	cli := newTestGreetCli()

	instance, err := cli.Process([]string{"greet", "--loud", "world"})
	require.NoError(t, err)

	greet, ok := instance.(*testGreet)
	require.True(t, ok)
	assert.Equal(t, "world", greet.who)
	assert.True(t, greet.loud)
}

func TestCliProcessReturnsParseErrorOnUnknownCommand(t *testing.T) {
	cli := newTestGreetCli()

	_, err := cli.Process([]string{"frobnicate"})
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestCliRunExecutesCommand(t *testing.T) {
	cli := newTestGreetCli()
	var out bytes.Buffer

	code := cli.Run([]string{"greet", "-n", "alice", "bob"}, RunContext{Stdout: &out})
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi bob", out.String())
}

func TestCliRunHelpShortCircuits(t *testing.T) {
	cli := newTestGreetCli()
	var out bytes.Buffer

	code := cli.Run([]string{"greet", "--help"}, RunContext{Stdout: &out})
	assert.Equal(t, 0, code)
}

func TestCliSuggestCompletesPathWords(t *testing.T) {
	cli := newTestGreetCli()

	out := cli.Suggest([]string{"gr"}, true)
	assert.Contains(t, out, "greet")
}
