// Package bind implements the binder described in the design: given a
// winning branch state, it invokes a command's transformers in declaration
// order to copy matched values into a freshly constructed command
// instance.
package bind

import "github.com/nfargs/nfargs/internal/state"

// Context is threaded through a command's transformers. Instance is the
// freshly constructed command value (as returned by the registering
// package's NewInstance); Run is the winning branch's state; cursor tracks
// how many positionals have been destructively consumed so far, so that
// positional transformers each claim the next unclaimed slot in
// declaration order (base spec §4.4: "Positional transformer: consumes the
// next positional from state.positionals (destructive)").
type Context struct {
	Instance any
	Run      *state.Run

	// Defaults holds option values read from configuration, keyed by the
	// option's canonical (first-declared) name, consulted by String and
	// Boolean transformers only when argv itself left the option unset
	// (SPEC_FULL §4.9).
	Defaults map[string]string

	cursor int
}

// Transformer is a pure consumer of a Context that writes into Instance.
// Errors are attributed to the partially bound instance by the caller
// (base spec §4.4: "errors during binding... carry an attached reference
// to the partially bound command instance").
type Transformer func(ctx *Context) error

// Bind runs every transformer against a fresh Context wrapping instance and
// run, in declaration order, stopping at the first error.
func Bind(instance any, run state.Run, transformers []Transformer, defaults map[string]string) error {
	ctx := &Context{Instance: instance, Run: &run, Defaults: defaults}
	for _, t := range transformers {
		if err := t(ctx); err != nil {
			return err
		}
	}
	return nil
}

// BooleanValue returns the last occurrence's boolean value for one of
// names, and whether any occurrence was found.
func BooleanValue(run *state.Run, names []string) (bool, bool) {
	found := false
	value := false
	for _, o := range run.Options {
		if !o.IsSet {
			continue
		}
		if containsName(names, o.Name) {
			found = true
			value = o.Bool
		}
	}
	return value, found
}

// StringValue returns the last occurrence's string value for one of names
// ("later wins", base spec §4.4), and whether any occurrence was found.
func StringValue(run *state.Run, names []string) (string, bool) {
	found := false
	value := ""
	for _, o := range run.Options {
		if o.IsSet {
			continue
		}
		if containsName(names, o.Name) {
			found = true
			value = o.Value
		}
	}
	return value, found
}

// ArrayValues returns every occurrence's string value for one of names, in
// the order they were matched (base spec §4.4: "Array-option transformer:
// appends every occurrence to an ordered list").
func ArrayValues(run *state.Run, names []string) []string {
	var out []string
	for _, o := range run.Options {
		if o.IsSet {
			continue
		}
		if containsName(names, o.Name) {
			out = append(out, o.Value)
		}
	}
	return out
}

// NextPositional destructively consumes the next unclaimed non-extra
// positional, if any.
func NextPositional(ctx *Context) (string, bool) {
	for ctx.cursor < len(ctx.Run.Positionals) {
		p := ctx.Run.Positionals[ctx.cursor]
		ctx.cursor++
		if !p.Extra {
			return p.Value, true
		}
	}
	return "", false
}

// RemainingRest destructively consumes every remaining positional from the
// cursor onward (named or extra), for the trailing rest/proxy slot.
func RemainingRest(ctx *Context) []string {
	var out []string
	for ; ctx.cursor < len(ctx.Run.Positionals); ctx.cursor++ {
		out = append(out, ctx.Run.Positionals[ctx.cursor].Value)
	}
	return out
}

// Path returns the literal subcommand words the winning branch consumed.
func Path(run *state.Run) []string {
	return run.Path
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
