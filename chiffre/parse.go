package chiffre

import (
	"errors"
	"fmt"
	"time"
)

// ParseOptions configures duration parsing.
type ParseOptions struct {
	Tolerant bool // Drop unrecognized words instead of rejecting the phrase
}

// DurationResult contains the parsed duration and how it was read.
type DurationResult struct {
	Value    time.Duration
	Shape    Shape
	Tokens   []Token // Tokens the value was composed from
	Warnings []ParseError
}

// NumeralResult contains the parsed number and the words dropped on the way.
type NumeralResult struct {
	Value    Decimal
	Tokens   []Token
	Warnings []ParseError
}

// ParseNumeral parses a spelled-out or digit French number.
// Words that are not numerals are skipped.
func ParseNumeral(input string) (Decimal, error) {
	res, err := ParseNumeralWithOptions(input, ParseOptions{Tolerant: true})
	if err != nil {
		return Decimal{}, err
	}
	return res.Value, nil
}

// ParseNumeralWithOptions parses with full options. In strict mode a word
// outside the vocabulary fails the parse.
func ParseNumeralWithOptions(input string, opts ParseOptions) (*NumeralResult, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	kept, warnings, err := dropFiller(tokens, opts)
	if err != nil {
		return nil, err
	}
	v, err := ComposeNumeral(kept)
	if err != nil {
		return nil, err
	}
	return &NumeralResult{Value: v, Tokens: kept, Warnings: warnings}, nil
}

// ParseDuration parses a French duration phrase in tolerant mode.
func ParseDuration(input string) (time.Duration, error) {
	res, err := ParseDurationWithOptions(input, ParseOptions{Tolerant: true})
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// ParseDurationWithOptions parses with full options.
func ParseDurationWithOptions(input string, opts ParseOptions) (*DurationResult, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}

	kept, warnings, err := dropFiller(tokens, opts)
	if err != nil {
		return nil, err
	}

	shape, err := DetectShape(kept)
	if err != nil {
		return nil, err
	}
	v, err := ComposeDuration(kept, shape)
	if err != nil {
		return nil, err
	}

	return &DurationResult{Value: v, Shape: shape, Tokens: kept, Warnings: warnings}, nil
}

// dropFiller removes filler tokens, recording a warning for each in tolerant
// mode and failing on the first one otherwise.
func dropFiller(tokens []Token, opts ParseOptions) ([]Token, []ParseError, error) {
	kept := make([]Token, 0, len(tokens))
	var warnings []ParseError
	for _, tok := range tokens {
		if tok.Kind != TokenFiller {
			kept = append(kept, tok)
			continue
		}
		if !opts.Tolerant {
			return nil, nil, &ParseError{Message: fmt.Sprintf("unexpected word %q", tok.Text), Pos: tok.Pos}
		}
		warnings = append(warnings, ParseError{Message: fmt.Sprintf("ignored word %q", tok.Text), Pos: tok.Pos})
	}
	return kept, warnings, nil
}

// DetectShape returns the first shape in ShapePrecedence whose structure the
// tokens fit. A phrase that fits a shape but holds an unresolvable value
// (a unit with no sub-unit, say) still selects that shape; ComposeDuration
// then reports the failure.
func DetectShape(tokens []Token) (Shape, error) {
	if !hasNumeral(tokens) {
		return ShapeUnknown, ErrEmptyNumeral
	}

	var furthest *ComposeError
	for _, shape := range ShapePrecedence {
		_, err := composeShape(tokens, shape)
		if err == nil || !structural(err) {
			return shape, nil
		}
		var ce *ComposeError
		if errors.As(err, &ce) && (furthest == nil || ce.Pos.Offset > furthest.Pos.Offset) {
			furthest = ce
		}
	}

	if furthest == nil {
		return ShapeUnknown, ErrShapeMismatch
	}
	return ShapeUnknown, &ComposeError{Err: ErrShapeMismatch, Pos: furthest.Pos, Text: furthest.Text}
}

func hasNumeral(tokens []Token) bool {
	for _, tok := range tokens {
		if tok.IsNumeral() {
			return true
		}
	}
	return false
}
