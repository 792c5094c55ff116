package gridrex

import (
	"errors"
	"fmt"
)

// Engine errors. Every failing operation leaves the engine state unmodified;
// nothing is retried internally.
var (
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("gridrex: coordinate out of bounds")

	// ErrMalformedPattern indicates pattern rows of differing length.
	ErrMalformedPattern = errors.New("gridrex: pattern rows differ in length")

	// ErrUnknownSymbol indicates a symbol not in the alphabet.
	ErrUnknownSymbol = errors.New("gridrex: symbol not in alphabet")

	// ErrUnknownPattern indicates a pattern ID outside [0, NumPatterns).
	ErrUnknownPattern = errors.New("gridrex: pattern ID out of range")

	// ErrBadAlphabet indicates an empty alphabet, repeated symbols, or more
	// than 256 symbols.
	ErrBadAlphabet = errors.New("gridrex: invalid alphabet")

	// ErrAlphabetMismatch indicates a pattern parsed against a different
	// alphabet than the matcher's.
	ErrAlphabetMismatch = errors.New("gridrex: pattern uses a different alphabet")

	// ErrBadDimensions indicates non-positive grid dimensions.
	ErrBadDimensions = errors.New("gridrex: grid dimensions must be positive")

	// ErrInvalidConfig indicates an invalid Config.
	ErrInvalidConfig = errors.New("gridrex: invalid configuration")
)

// CompileError wraps a matcher compilation failure with the pattern that
// triggered it, when one is identifiable.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("gridrex: compiling pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("gridrex: compiling catalogue: %v", e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
