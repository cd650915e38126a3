package argparse

import (
	"errors"
	"fmt"
)

// ErrorType represents error categories for parse failures.
// These categories drive exit-code mapping (see ExitCodeFor) and
// decide which errors carry suggestions.
type ErrorType string

const (
	// ErrorTypeConfiguration marks declaration-time misuse: duplicate or
	// reserved names, Required/Default/Options conflicts, missing equality,
	// malformed bind tags. Configuration errors panic, they never reach a
	// ParseArgs return value.
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeSyntax marks argument-vector shape violations: unknown
	// options, missing values, values handed to flags.
	ErrorTypeSyntax ErrorType = "syntax"
	// ErrorTypeSemantic marks well-shaped tokens with bad payloads: cast
	// failures, options-list violations, repeated single values.
	ErrorTypeSemantic ErrorType = "semantic"
	// ErrorTypePostParse marks required arguments that the finished scan
	// never satisfied.
	ErrorTypePostParse ErrorType = "post_parse"
)

// ErrHelpRequested is returned by ParseArgs when help interception is
// enabled and the argument vector asks for help. Callers print usage and
// stop; nothing went wrong.
var ErrHelpRequested = errors.New("help requested")

// ParseError is the error type for everything the parser and its holders
// report. Message is complete on its own; Arg and Suggestions carry the
// structured pieces for callers that render richer output.
type ParseError struct {
	Type        ErrorType
	Message     string
	Arg         string   // name of the argument involved, when known
	Suggestions []string // near-miss names for unknown-option errors
	Cause       error    // underlying failure, e.g. a strconv error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError with the given type and message.
func NewParseError(typ ErrorType, message string) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: message,
	}
}

// parseErrorf is the fmt-style constructor used throughout the package.
func parseErrorf(typ ErrorType, format string, args ...any) *ParseError {
	return NewParseError(typ, fmt.Sprintf(format, args...))
}

// Error builders for fluent use

// WithArg records the argument name the error refers to.
func (e *ParseError) WithArg(name string) *ParseError {
	e.Arg = name
	return e
}

// WithSuggestions attaches did-you-mean candidates to the error.
func (e *ParseError) WithSuggestions(names ...string) *ParseError {
	e.Suggestions = append(e.Suggestions, names...)
	return e
}

// WithCause records the underlying failure.
func (e *ParseError) WithCause(cause error) *ParseError {
	e.Cause = cause
	return e
}

// failConfig reports a declaration-time misuse. Declarations run before
// main logic ever parses, so these panic rather than return: the program
// itself is wrong, not its input.
func failConfig(format string, args ...any) {
	panic(parseErrorf(ErrorTypeConfiguration, format, args...))
}
