package chiffre

// ComposeNumeral folds a token run into the number it spells.
//
// Additive and digit tokens accumulate into a running chunk; magnitude tokens
// multiply it and close the chunk. Completed chunks sit on a stack and the
// result is their sum. Tokens that carry no numeric value are ignored, so
// "vingt et un" is 21. A run with no numeral-bearing token at all fails with
// ErrEmptyNumeral rather than yielding 0.
//
//	un million deux cent mille   -> 1_000_000 + 200_000
//	cent mille                   -> 100 * 1000
//	quatre vingt douze           -> 80 + 12
func ComposeNumeral(tokens []Token) (Decimal, error) {
	var c numeralComposer
	for _, tok := range tokens {
		var err error
		switch tok.Kind {
		case TokenAdditive, TokenDigits:
			err = c.add(tok.Value)
		case TokenMagnitude:
			err = c.magnify(tok.Value)
		default:
			continue
		}
		if err != nil {
			return Decimal{}, composeErr(err, tok)
		}
	}
	if !c.seen {
		return Decimal{}, ErrEmptyNumeral
	}
	return c.result()
}

var hundred = DecimalFromInt64(100)

// numeralComposer holds the fold state: completed chunks and the chunk
// accumulated since the last magnitude.
type numeralComposer struct {
	stack   []Decimal
	running Decimal
	seen    bool
}

func (c *numeralComposer) add(v Decimal) error {
	c.seen = true
	sum, err := c.running.Add(v)
	if err != nil {
		return err
	}
	c.running = sum
	return nil
}

// magnify applies a magnitude word using deferred chunk re-multiplication:
// completed chunks smaller than m are folded back into the operand, so the
// magnitude multiplies the whole phrase it follows ("deux cent mille" is
// (2*100)*1000, "cent mille millions" is ((100)*1000)*10^6). Chunks of an
// equal or larger magnitude stay closed ("deux mille cent" is 2000 + 100).
// Collective nouns (magnitudes under a hundred: couple, dizaine, douzaine)
// count everything before them, so "deux cent douzaines" is 200*12.
// A magnitude with no operand at all stands for one of itself.
func (c *numeralComposer) magnify(m Decimal) error {
	c.seen = true
	collective := m.Cmp(hundred) < 0
	operand := c.running
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		if !collective && top.Cmp(m) >= 0 {
			break
		}
		sum, err := operand.Add(top)
		if err != nil {
			return err
		}
		operand = sum
		c.stack = c.stack[:len(c.stack)-1]
	}

	chunk := m
	if !operand.IsZero() {
		product, err := operand.Mul(m)
		if err != nil {
			return err
		}
		chunk = product
	}
	c.stack = append(c.stack, chunk)
	c.running = Decimal{}
	return nil
}

func (c *numeralComposer) result() (Decimal, error) {
	total := c.running
	for _, chunk := range c.stack {
		sum, err := total.Add(chunk)
		if err != nil {
			return Decimal{}, err
		}
		total = sum
	}
	return total, nil
}
