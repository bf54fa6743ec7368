package chiffre

import (
	"errors"
	"fmt"
)

// Composition errors. Callers match them with errors.Is; positioned failures
// arrive wrapped in a *ComposeError.
var (
	ErrEmptyNumeral    = errors.New("chiffre: no numeral content")
	ErrUnknownUnit     = errors.New("chiffre: unknown unit")
	ErrUnknownFraction = errors.New("chiffre: unknown fraction")
	ErrNoSubUnit       = errors.New("chiffre: unit has no sub-unit")
	ErrShapeMismatch   = errors.New("chiffre: tokens do not match duration shape")
	ErrOverflow        = errors.New("chiffre: overflow")
)

// ComposeError locates a composition failure on the offending token.
type ComposeError struct {
	Err  error
	Pos  Position
	Text string
}

func (e *ComposeError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%v at %s", e.Err, e.Pos)
	}
	return fmt.Sprintf("%v: %q at %s", e.Err, e.Text, e.Pos)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

// ParseError represents a lexing or recognition error with location.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func composeErr(err error, tok Token) *ComposeError {
	return &ComposeError{Err: err, Pos: tok.Pos, Text: tok.Text}
}
