package chiffre

import (
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Shape is the structural class of a duration phrase.
type Shape uint8

const (
	ShapeUnknown Shape = iota

	// ShapeFractional: numeral, fraction, [article], unit.
	// "3 quarts d'heure" = 3 * 1/4 * 1h.
	ShapeFractional

	// ShapeIntervalFraction: interval parts, conjunction, fraction. The
	// fraction applies to the last unit seen. "2 ans et demi" = 2y + 1/2y.
	ShapeIntervalFraction

	// ShapeIntervalNumber: interval parts, bare numeral. The numeral counts
	// the sub-unit of the last unit seen. "1h30" = 1h + 30min.
	ShapeIntervalNumber

	// ShapeFullInterval: interval parts, optionally separated by conjunctions.
	// "4 mois, 3 semaines, 2 jours, 1 heure".
	ShapeFullInterval
)

// ShapePrecedence lists the shapes most specific first. A phrase that fits
// several shapes resolves to the earliest.
var ShapePrecedence = []Shape{
	ShapeFractional,
	ShapeIntervalFraction,
	ShapeIntervalNumber,
	ShapeFullInterval,
}

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeFractional:
		return "fractional"
	case ShapeIntervalFraction:
		return "interval+fraction"
	case ShapeIntervalNumber:
		return "interval+number"
	case ShapeFullInterval:
		return "full-interval"
	default:
		return "unknown"
	}
}

// ComposeDuration resolves a duration phrase of the given shape.
//
// Each interval part's numeral span goes through ComposeNumeral before being
// multiplied by its unit's base duration. The tokens must fit the shape
// exactly (a trailing TokenEOF is allowed); otherwise ErrShapeMismatch is
// returned. Results beyond the range of time.Duration fail with ErrOverflow.
func ComposeDuration(tokens []Token, shape Shape) (time.Duration, error) {
	st, err := composeShape(tokens, shape)
	if err != nil {
		return 0, err
	}
	return st.duration()
}

// durationState is the composer's working state. lastUnit is the most
// recently consumed unit; fraction-only continuations and bare trailing
// numerals resolve against it.
type durationState struct {
	stream   *TokenStream
	total    *big.Rat // nanoseconds
	lastUnit UnitKind
}

func composeShape(tokens []Token, shape Shape) (*durationState, error) {
	st := &durationState{
		stream: NewTokenStream(tokens),
		total:  new(big.Rat),
	}

	var err error
	switch shape {
	case ShapeFractional:
		err = st.fractional()
	case ShapeIntervalFraction:
		err = st.intervalFraction()
	case ShapeIntervalNumber:
		err = st.intervalNumber()
	case ShapeFullInterval:
		err = st.intervalParts()
	default:
		return nil, fmt.Errorf("%w: unknown shape %d", ErrShapeMismatch, shape)
	}
	if err != nil {
		return nil, err
	}
	if !st.stream.AtEnd() {
		return nil, st.mismatch()
	}
	return st, nil
}

// fractional: numeral, fraction, [article], unit.
func (st *durationState) fractional() error {
	n, err := st.number()
	if err != nil {
		return err
	}
	ratio, err := st.fraction()
	if err != nil {
		return err
	}
	st.stream.Match(TokenArticle)
	base, err := st.unit()
	if err != nil {
		return err
	}
	st.accumulate(base, ratio, n)
	return nil
}

// intervalFraction: interval parts, conjunction, fraction.
func (st *durationState) intervalFraction() error {
	if err := st.intervalParts(); err != nil {
		return err
	}
	if !st.stream.Match(TokenConjunction) {
		return st.mismatch()
	}
	ratio, err := st.fraction()
	if err != nil {
		return err
	}
	base, _ := st.lastUnit.Base()
	st.accumulate(durationRat(base), ratio)
	return nil
}

// intervalNumber: interval parts, bare numeral read in the last unit's sub-unit.
func (st *durationState) intervalNumber() error {
	if err := st.intervalParts(); err != nil {
		return err
	}
	at := st.stream.Peek()
	n, err := st.number()
	if err != nil {
		return err
	}
	sub, ok := st.lastUnit.SubUnit()
	if !ok {
		return &ComposeError{
			Err:  fmt.Errorf("%w: %s", ErrNoSubUnit, st.lastUnit),
			Pos:  at.Pos,
			Text: at.Text,
		}
	}
	base, _ := sub.Base()
	st.accumulate(durationRat(base), n)
	return nil
}

// intervalParts: interval_part ([conjunction] interval_part)*.
func (st *durationState) intervalParts() error {
	if err := st.intervalPart(); err != nil {
		return err
	}
	for {
		mark := st.stream.Position()
		st.stream.Match(TokenConjunction)
		if !st.atIntervalPart() {
			st.stream.Reset(mark)
			return nil
		}
		if err := st.intervalPart(); err != nil {
			return err
		}
	}
}

// intervalPart: numeral span, unit.
func (st *durationState) intervalPart() error {
	n, err := st.number()
	if err != nil {
		return err
	}
	base, err := st.unit()
	if err != nil {
		return err
	}
	st.accumulate(base, n)
	return nil
}

// atIntervalPart reports whether a numeral span followed by a unit starts here.
func (st *durationState) atIntervalPart() bool {
	i := 0
	for st.stream.PeekN(i).IsNumeral() {
		i++
	}
	return i > 0 && st.stream.PeekN(i).Kind == TokenUnit
}

// number consumes a contiguous numeral span and composes it.
func (st *durationState) number() (*big.Rat, error) {
	first := st.stream.Peek()
	var span []Token
	for st.stream.Peek().IsNumeral() {
		span = append(span, st.stream.Advance())
	}
	if len(span) == 0 {
		return nil, composeErr(ErrEmptyNumeral, first)
	}
	v, err := ComposeNumeral(span)
	if err != nil {
		return nil, err
	}
	return v.Rat(), nil
}

// unit consumes a unit token and records it as the last unit seen.
func (st *durationState) unit() (*big.Rat, error) {
	tok := st.stream.Peek()
	if tok.Kind != TokenUnit {
		return nil, st.mismatch()
	}
	base, ok := tok.Unit.Base()
	if !ok {
		return nil, composeErr(ErrUnknownUnit, tok)
	}
	st.stream.Advance()
	st.lastUnit = tok.Unit
	return durationRat(base), nil
}

func (st *durationState) fraction() (*big.Rat, error) {
	tok := st.stream.Peek()
	if tok.Kind != TokenFraction {
		return nil, st.mismatch()
	}
	ratio, ok := tok.Fraction.Ratio()
	if !ok {
		return nil, composeErr(ErrUnknownFraction, tok)
	}
	st.stream.Advance()
	return ratio, nil
}

// accumulate adds the product of the factors to the running total.
func (st *durationState) accumulate(factors ...*big.Rat) {
	product := new(big.Rat).SetInt64(1)
	for _, f := range factors {
		product.Mul(product, f)
	}
	st.total.Add(st.total, product)
}

func (st *durationState) mismatch() error {
	return composeErr(ErrShapeMismatch, st.stream.Peek())
}

// duration converts the total to a time.Duration, truncating sub-nanosecond
// remainders.
func (st *durationState) duration() (time.Duration, error) {
	ns := new(big.Int).Quo(st.total.Num(), st.total.Denom())
	if !ns.IsInt64() {
		return 0, ErrOverflow
	}
	return time.Duration(ns.Int64()), nil
}

func durationRat(d time.Duration) *big.Rat {
	return new(big.Rat).SetInt64(int64(d))
}

// structural reports whether err means the tokens do not have the shape, as
// opposed to having it with an unresolvable value.
func structural(err error) bool {
	return errors.Is(err, ErrShapeMismatch) || errors.Is(err, ErrEmptyNumeral)
}
