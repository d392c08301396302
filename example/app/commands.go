package main

import (
	"fmt"

	"github.com/nfargs/nfargs"
)

type greetCmd struct {
	name string
	loud bool
	who  string
}

func (c *greetCmd) Execute(ctx *nfargs.RunContext) error {
	greeting := fmt.Sprintf("Hello, %s", c.who)
	if c.name != "" {
		greeting += " from " + c.name
	}
	if c.loud {
		greeting += "!!!"
	}
	fmt.Fprintln(ctx.Stdout, greeting)
	return nil
}

func newGreetCommand() *nfargs.CommandSpec {
	cmd := nfargs.NewCommand[greetCmd]().
		Path("greet")

	cmd.String([]string{"--name", "-n"}, func(g *greetCmd) *string { return &g.name })
	cmd.Boolean([]string{"--loud", "-l"}, func(g *greetCmd) *bool { return &g.loud })
	cmd.Positional(true, func(g *greetCmd) *string { return &g.who })

	return cmd.Spec()
}

type runCmd struct {
	args []string
}

func (c *runCmd) Execute(ctx *nfargs.RunContext) error {
	fmt.Fprintln(ctx.Stdout, "would exec:", c.args)
	return nil
}

func newRunCommand() *nfargs.CommandSpec {
	cmd := nfargs.NewCommand[runCmd]().Path("run")
	cmd.Proxy(func(r *runCmd) *[]string { return &r.args })
	return cmd.Spec()
}
