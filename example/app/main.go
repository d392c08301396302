package main

import (
	"os"

	"github.com/nfargs/nfargs"
	excobra "github.com/nfargs/nfargs/export/cobra"
)

func main() {
	cli := nfargs.NewCli()
	cli.Register(newGreetCommand())
	cli.Register(newRunCommand())

	ctx := nfargs.RunContext{Stdout: os.Stdout, Stderr: os.Stderr, Stdin: os.Stdin}

	if len(os.Args) > 1 && os.Args[1] == "--cobra" {
		root := excobra.Build("app", cli, &ctx)
		root.SilenceUsage = true
		root.SetArgs(os.Args[2:])
		if err := root.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	os.Exit(cli.Run(os.Args[1:], ctx))
}
