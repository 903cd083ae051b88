package highlight

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the highlighter.
var (
	// ErrUnknownEngine is returned when Options.Engine names no known engine.
	ErrUnknownEngine = errors.New("unknown regex engine")

	// ErrMatchTimeout is returned when a pcre scan exceeds Options.MatchTimeout.
	ErrMatchTimeout = errors.New("regex match timed out")
)

// PatternError reports a pattern that the selected engine could not compile.
type PatternError struct {
	Pattern string
	Engine  string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid regular expression %q (%s): %v", e.Pattern, e.Engine, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
