package nfargs

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/nfargs/nfargs/internal/bind"
	"github.com/nfargs/nfargs/internal/nfa"
	"github.com/nfargs/nfargs/internal/state"
)

// RunContext carries the I/O streams, color depth, and opaque extensions a
// running command is executed with (base spec §6). A zero-value
// RunContext is filled in with process defaults by Cli.Run.
type RunContext struct {
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	ColorDepth int

	// Defaults pre-fills option values before argv is matched, consulted
	// by string/boolean transformers only when argv itself left the
	// option unset (SPEC_FULL §4.9).
	Defaults map[string]string

	// Extensions preserves any user-defined keys verbatim across Run
	// calls (base spec §6: "user-defined extensions preserved verbatim").
	Extensions map[string]any
}

func defaultContext() RunContext {
	return RunContext{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		ColorDepth: 1,
	}
}

// merge overlays non-zero fields of override onto a copy of the default
// context, preserving Extensions verbatim.
func (c RunContext) merge(override RunContext) RunContext {
	out := c
	if override.Stdin != nil {
		out.Stdin = override.Stdin
	}
	if override.Stdout != nil {
		out.Stdout = override.Stdout
	}
	if override.Stderr != nil {
		out.Stderr = override.Stderr
	}
	if override.ColorDepth != 0 {
		out.ColorDepth = override.ColorDepth
	}
	if override.Defaults != nil {
		out.Defaults = override.Defaults
	}
	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	return out
}

// HelpCommand is the bound value Process returns when -h/--help was
// captured anywhere in argv (base spec §4.6). Selected is the command that
// would otherwise have won, already bound, so a caller can render usage
// for it.
type HelpCommand struct {
	Selected any
	Spec     *CommandSpec
}

// Execute satisfies Commander trivially; help rendering itself is an
// external collaborator (base spec §1: "help/usage rendering... treated as
// external collaborators").
func (h *HelpCommand) Execute(ctx *RunContext) error { return nil }

// Cli compiles a set of registered commands into one NFA and dispatches
// argv against it (base spec §2, component 8). The compiled NFA is
// immutable once built and may be shared across concurrent Run calls; each
// call owns its private frontier and bound command instance (base spec
// §5).
type Cli struct {
	commands  []*CommandSpec
	automaton *nfa.NFA
	built     bool

	// Validator, if non-nil, is run against every freshly bound command
	// instance before Execute (SPEC_FULL §4.7). NewCli installs the
	// default go-playground/validator-backed implementation; a caller may
	// replace it with their own.
	Validator Validator
}

// NewCli returns an empty dispatcher. Register commands before the first
// Run/Process/Suggest; the automaton is compiled lazily by the first such
// call after a Register.
func NewCli() *Cli {
	return &Cli{Validator: DefaultValidator()}
}

// Register freezes spec's Index to its registration order and adds it to
// the command set. Registration must complete before the first run (base
// spec §5).
func (c *Cli) Register(spec *CommandSpec) {
	spec.Index = len(c.commands)
	c.commands = append(c.commands, spec)
	c.built = false
}

// Commands returns every registered command, in registration order.
func (c *Cli) Commands() []*CommandSpec {
	return c.commands
}

func (c *Cli) ensureBuilt() {
	if c.built {
		return
	}
	grammars := make([]*state.CommandGrammar, len(c.commands))
	for i, cmd := range c.commands {
		grammars[i] = cmd.grammar()
	}
	c.automaton = nfa.Build(grammars)
	c.built = true
}

// Process runs the matcher, selector, and binder over argv and returns the
// bound command instance (or a *HelpCommand wrapping the otherwise-winning
// command), or a *ParseError describing why nothing matched (base spec
// §4.6, §7).
func (c *Cli) Process(argv []string) (any, error) {
	return c.process(argv, nil)
}

func (c *Cli) process(argv []string, defaults map[string]string) (any, error) {
	c.ensureBuilt()

	if len(argv) == 0 && !c.hasDefaultCommand() {
		return &HelpCommand{}, nil
	}

	tokens := Tokenize(argv)
	result := nfa.Run(c.automaton, tokens)

	selection := nfa.Select(result.Terminal)
	if !selection.OK {
		return nil, c.parseError(tokens, result)
	}

	if selection.CommandIndex == HelpCommandIndex {
		selected, spec, err := c.bind(selection.Branch, defaults)
		if err != nil {
			return nil, err
		}
		return &HelpCommand{Selected: selected, Spec: spec}, nil
	}

	instance, _, err := c.bind(selection.Branch, defaults)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func (c *Cli) hasDefaultCommand() bool {
	for _, cmd := range c.commands {
		if cmd.IsDefault() {
			return true
		}
	}
	return false
}

func (c *Cli) bind(branch nfa.Branch, defaults map[string]string) (any, *CommandSpec, error) {
	idx := branch.Run.SelectedIndex
	if idx < 0 || idx >= len(c.commands) {
		return nil, nil, &ExecutionError{Err: &AssertionError{Message: fmt.Sprintf("selected command index %d out of range", idx)}}
	}
	spec := c.commands[idx]
	instance := spec.NewInstance()
	if err := bind.Bind(instance, branch.Run, spec.Transformers, defaults); err != nil {
		return instance, spec, &ExecutionError{Command: instance, Err: err}
	}
	return instance, spec, nil
}

func (c *Cli) parseError(tokens []Token, result nfa.Result) *ParseError {
	pe := &ParseError{Kind: ErrUnknownCommand, TokenIndex: result.DiedAt}
	deepest := -1
	for _, d := range result.DeadEnds {
		if len(d.Consumed) > deepest {
			deepest = len(d.Consumed)
			pe.Consumed = d.Consumed
			pe.Expected = dedupStrings(d.Expected)
		} else if len(d.Consumed) == deepest {
			pe.Expected = dedupStrings(append(pe.Expected, d.Expected...))
		}
	}
	sort.Strings(pe.Expected)

	// result.DiedAt indexes into tokens, which is offset by one past argv
	// (tokens[0] is the StartOfInput sentinel); the offending word, if any,
	// is what the suggestion is measured against. DiedAt can equal
	// len(tokens) when the frontier survived to EndOfInput with no
	// terminal branch, in which case there is no single offending word.
	if result.DiedAt < len(tokens) && len(pe.Expected) > 0 {
		word := tokens[result.DiedAt].String()
		if guess, dist := closestChoice(word, pe.Expected); word != "" && dist > 0 && dist <= len(word)/2+1 {
			pe.Suggestion = guess
		}
	}
	return pe
}

func dedupStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Run processes argv, validates and executes the resulting command, and
// returns its exit code (base spec §6: "0 = success; 1 = argument parse
// error or uncaught execute error; any integer returned by execute is
// propagated" — here Execute returns an error rather than an int, per Go
// idiom, and a non-nil error not satisfying exitCoder maps to 1).
func (c *Cli) Run(argv []string, override RunContext) int {
	ctx := defaultContext().merge(override)

	cmd, err := c.process(argv, ctx.Defaults)
	if err != nil {
		fmt.Fprintln(ctx.Stderr, err)
		return 1
	}

	if help, ok := cmd.(*HelpCommand); ok {
		return c.runHelp(help, &ctx)
	}

	if c.Validator != nil {
		if err := c.Validator.Validate(cmd); err != nil {
			fmt.Fprintln(ctx.Stderr, &ValidationError{Command: cmd, Err: err})
			return 1
		}
	}

	runner, ok := cmd.(Commander)
	if !ok {
		fmt.Fprintln(ctx.Stderr, &ExecutionError{Command: cmd, Err: &AssertionError{Message: "bound command does not implement Commander"}})
		return 1
	}

	if err := runner.Execute(&ctx); err != nil {
		if catcher, ok := runner.(interface{ Catch(error) error }); ok {
			if cerr := catcher.Catch(err); cerr != nil {
				fmt.Fprintln(ctx.Stderr, cerr)
				return 1
			}
			return 0
		}
		if code, ok := err.(exitCoder); ok {
			return code.ExitCode()
		}
		fmt.Fprintln(ctx.Stderr, &ExecutionError{Command: cmd, Err: err})
		return 1
	}

	return 0
}

// exitCoder lets a command's Execute propagate a specific exit code rather
// than the default 0/1 (base spec §6: "any integer returned by execute is
// propagated").
type exitCoder interface {
	ExitCode() int
}

func (c *Cli) runHelp(help *HelpCommand, ctx *RunContext) int {
	// Help rendering is an external collaborator (base spec §1); the core
	// only recognizes the request and surfaces what it selected.
	fmt.Fprintln(ctx.Stdout, "usage: help requested")
	return 0
}

// Suggest returns the literal tokens that could legally extend argv, for
// shell completion (base spec §4.5, §6).
func (c *Cli) Suggest(argv []string, partial bool) []string {
	c.ensureBuilt()
	tokens := Tokenize(argv)
	// Drop the EndOfInput sentinel: the suggester operates on a possibly
	// truncated stream, not a fully terminated one.
	tokens = tokens[:len(tokens)-1]
	return nfa.Suggest(c.automaton, tokens, partial)
}
