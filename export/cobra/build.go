// Package cobra translates a compiled nfargs.Cli into a *cobra.Command
// tree, so a program built on the NFA matcher can also be driven through
// cobra's own parsing, help text, and shell-completion machinery. It is
// grounded on the teacher's own gen/flags code generator, which walks a
// scanned command tree and builds a cobra.Command per subcommand; here the
// walk is over already-compiled CommandSpecs instead of struct tags.
package cobra

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfargs/nfargs"
	"github.com/nfargs/nfargs/internal/bind"
	"github.com/nfargs/nfargs/internal/state"
)

// Build walks every command registered on cli and returns a root
// *cobra.Command with one subcommand per path, nested the same way the
// NFA builder shares path prefixes (base spec §4.1). Each leaf's RunE
// reuses cli's transformers and cli.Validator and then calls Execute; it
// does not go through cli.Run, so a command's Catch handler and ExitCode()
// are not consulted and validation errors are returned unwrapped.
func Build(name string, cli *nfargs.Cli, ctx *nfargs.RunContext) *cobra.Command {
	root := &cobra.Command{Use: name}
	trie := map[*cobra.Command]map[string]*cobra.Command{}

	childFor := func(parent *cobra.Command, word string) *cobra.Command {
		children, ok := trie[parent]
		if !ok {
			children = map[string]*cobra.Command{}
			trie[parent] = children
		}
		if c, ok := children[word]; ok {
			return c
		}
		c := &cobra.Command{Use: word}
		parent.AddCommand(c)
		children[word] = c
		return c
	}

	for _, spec := range cli.Commands() {
		paths := spec.Paths
		if len(paths) == 0 {
			paths = [][]string{{}}
		}
		for _, path := range paths {
			node := root
			for _, word := range path {
				node = childFor(node, word)
			}
			attach(node, spec, cli, ctx)
		}
	}

	return root
}

// attach installs spec's flags on node and wires its RunE to synthesize a
// matcher-shaped branch state from cobra's already-parsed flags and
// positional args, then bind, validate and execute it.
func attach(node *cobra.Command, spec *nfargs.CommandSpec, cli *nfargs.Cli, ctx *nfargs.RunContext) {
	values := make(map[string]any, len(spec.Options))

	for _, opt := range spec.Options {
		primary := opt.Names[0]
		flagName := strings.TrimLeft(primary, "-")
		switch {
		case opt.Arity == nfargs.ArityBoolean:
			v := node.Flags().Bool(flagName, false, "")
			values[primary] = v
		case opt.Array:
			v := node.Flags().StringArray(flagName, nil, "")
			values[primary] = v
		default:
			v := node.Flags().String(flagName, "", "")
			values[primary] = v
		}
		for _, alias := range opt.Names[1:] {
			if len(alias) == 2 {
				node.Flags().Lookup(flagName).Shorthand = strings.TrimLeft(alias, "-")
			}
		}
	}

	node.RunE = func(cmd *cobra.Command, args []string) error {
		run := state.Run{SelectedIndex: spec.Index, Terminal: true}
		for _, opt := range spec.Options {
			primary := opt.Names[0]
			switch v := values[primary].(type) {
			case *bool:
				if cmd.Flags().Changed(strings.TrimLeft(primary, "-")) {
					run.Options = append(run.Options, state.OptionValue{Name: primary, Bool: *v, IsSet: true})
				}
			case *string:
				if cmd.Flags().Changed(strings.TrimLeft(primary, "-")) {
					run.Options = append(run.Options, state.OptionValue{Name: primary, Value: *v})
				}
			case *[]string:
				for _, s := range *v {
					run.Options = append(run.Options, state.OptionValue{Name: primary, Value: s})
				}
			}
		}
		for i, a := range args {
			extra := i >= len(spec.Positionals)
			run.Positionals = append(run.Positionals, state.PositionalValue{Value: a, Extra: extra})
		}

		instance := spec.NewInstance()
		if err := bind.Bind(instance, run, spec.Transformers, ctx.Defaults); err != nil {
			return fmt.Errorf("binding %s: %w", node.Name(), err)
		}

		if cli.Validator != nil {
			if err := cli.Validator.Validate(instance); err != nil {
				return err
			}
		}

		runner, ok := instance.(nfargs.Commander)
		if !ok {
			return fmt.Errorf("command %s does not implement Commander", node.Name())
		}
		localCtx := *ctx
		return runner.Execute(&localCtx)
	}
}
