// Package nfa builds Thompson NFAs from the engine's regex syntax.
//
// The NFA is an intermediate form: the dfa package determinises it with
// subset construction and minimises the result. States carry epsilon edges,
// at most one symbol-consuming edge guarded by a symbol set, and a set of
// accept labels.
package nfa

import (
	"errors"
	"fmt"
)

// ErrBadLabel indicates an accept label outside [0, acceptCount).
var ErrBadLabel = errors.New("nfa: accept label out of range")

// ErrBadSymbolSet indicates a Letters atom whose set domain does not match
// the declared alphabet size.
var ErrBadSymbolSet = errors.New("nfa: symbol set domain mismatch")

// ErrUnknownNode indicates a Regex implementation from outside this package.
var ErrUnknownNode = errors.New("nfa: unknown regex node")

// BuildError wraps an NFA construction failure with the offending node.
type BuildError struct {
	Node string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("nfa: building %s node: %v", e.Node, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
