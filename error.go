package nfargs

import (
	"fmt"
	"strings"
)

// ParseErrorKind is the taxonomy of reasons a ParseError was produced,
// generalized from the teacher's own ParserError enum to the NFA matcher's
// failure points (base spec §7).
type ParseErrorKind uint

const (
	ErrUnknown ParseErrorKind = iota
	ErrExpectedArgument
	ErrUnknownFlag
	ErrUnknownCommand
	ErrNoArgumentForBool
	ErrRequired
	ErrDuplicatedFlag
	ErrInvalidTag
	ErrHelp
)

func (k ParseErrorKind) String() string {
	names := [...]string{
		"unknown",
		"expected argument",
		"unknown flag",
		"unknown command",
		"no argument for bool",
		"required",
		"duplicated flag",
		"invalid tag",
		"help",
	}
	if int(k) >= len(names) {
		return "unrecognized error type"
	}
	return names[k]
}

// ParseError is returned when no branch of the NFA survives to EndOfInput:
// no combination of registered commands could make sense of the given
// argv. It identifies the deepest divergence point and proposes the
// completions that would have been legal there (base spec §7).
type ParseError struct {
	Kind       ParseErrorKind
	TokenIndex int
	Consumed   []string
	Expected   []string

	// Suggestion is the closest (by edit distance) entry in Expected to
	// the word that actually appeared, populated only when it's a close
	// enough typo to be worth proposing (base spec's closest-match
	// convention, generalized from single-command to full-grammar
	// suggestions).
	Suggestion string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s at token %d", e.Kind, e.TokenIndex)
	if len(e.Consumed) > 0 {
		msg += fmt.Sprintf(" (after %q)", strings.Join(e.Consumed, " "))
	}
	if len(e.Expected) > 0 {
		msg += fmt.Sprintf("; expected one of: %s", strings.Join(e.Expected, ", "))
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// ValidationError is returned when the external schema validator rejects a
// freshly bound command instance. Command is the bound instance, kept for
// diagnostics (base spec §4.4, §7).
type ValidationError struct {
	Command any
	Err     error
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// ExecutionError wraps any error raised by a command's Execute and not
// caught by the command's own catch handler (base spec §7).
type ExecutionError struct {
	Command any
	Err     error
}

func (e *ExecutionError) Error() string { return e.Err.Error() }
func (e *ExecutionError) Unwrap() error { return e.Err }

// AssertionError marks an internal invariant violation (a programming
// error in the core, never user-facing on its own); the dispatcher always
// surfaces it wrapped as an ExecutionError with a distinguishing prefix
// (base spec §7: "surface as ExecutionError with a prefix").
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string { return "internal invariant violated: " + e.Message }
