// Package carapace wires shell completion onto a cobra tree produced by
// export/cobra, delegating every suggestion back to the NFA matcher's own
// Cli.Suggest rather than re-deriving completion candidates from cobra's
// flag/arg metadata. Grounded on the teacher's gen/completions code
// generator, which walks a cobra tree attaching a carapace.Carapace to
// each command; here the walk attaches one completion action per command
// instead of one per scanned struct field.
package carapace

import (
	comp "github.com/rsteube/carapace"
	"github.com/spf13/cobra"

	"github.com/nfargs/nfargs"
)

// Build registers a carapace completer on root and every descendant
// command, each one re-tokenizing the full argument line it's invoked with
// and asking cli.Suggest what could legally come next (base spec §4.5).
func Build(root *cobra.Command, cli *nfargs.Cli) *comp.Carapace {
	carapace := comp.Gen(root)

	walk(root, cli)

	return carapace
}

func walk(cmd *cobra.Command, cli *nfargs.Cli) {
	comp.Gen(cmd).PositionalAnyCompletion(
		comp.ActionCallback(func(c comp.Context) comp.Action {
			return suggestAction(cli, c)
		}),
	)

	for _, sub := range cmd.Commands() {
		walk(sub, cli)
	}
}

func suggestAction(cli *nfargs.Cli, c comp.Context) comp.Action {
	argv := append(append([]string(nil), c.Args...), c.Value)
	suggestions := cli.Suggest(argv, true)
	return comp.ActionValues(suggestions...)
}
