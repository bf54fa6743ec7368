package chiffre

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimal is an exact fixed-point number: value = coefficient * 10^(-scale).
//
// The coefficient is held as a 128-bit two's complement integer and the scale
// ranges over 0..127. Values are always kept reduced (no trailing fractional
// zeros), so two equal numbers share one representation. The zero value is 0.
type Decimal struct {
	scale int8
	coef  [16]byte
}

const maxScale = 127

var (
	bigTen      = big.NewInt(10)
	coefModulus = new(big.Int).Lsh(big.NewInt(1), 128)
)

// DecimalFromInt64 creates a Decimal from an int64.
func DecimalFromInt64(v int64) Decimal {
	d, _ := fromBig(big.NewInt(v), 0)
	return d
}

// ParseDecimal parses a plain decimal literal such as "123", "0,25" or "1.5".
// A single comma or dot separates the fractional digits; grouping separators
// are not accepted here.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	orig := s
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return Decimal{}, fmt.Errorf("invalid decimal: %q", orig)
	}

	intPart, fracPart := s, ""
	if i := strings.IndexAny(s, ".,"); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if fracPart == "" {
			return Decimal{}, fmt.Errorf("invalid decimal: %q", orig)
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Decimal{}, fmt.Errorf("invalid decimal: %q", orig)
	}
	if len(fracPart) > maxScale {
		return Decimal{}, fmt.Errorf("scale out of range: %d", len(fracPart))
	}

	coef, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("invalid decimal: %q", orig)
	}
	if neg {
		coef.Neg(coef)
	}
	return fromBig(coef, len(fracPart))
}

// MustParseDecimal is like ParseDecimal but panics on malformed input.
// It is intended for constants and tests.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Add returns d + other.
func (d Decimal) Add(other Decimal) (Decimal, error) {
	a, b, scale := align(d, other)
	return fromBig(a.Add(a, b), scale)
}

// Mul returns d * other.
func (d Decimal) Mul(other Decimal) (Decimal, error) {
	a := coefToInt(d.coef)
	a.Mul(a, coefToInt(other.coef))
	return fromBig(a, int(d.scale)+int(other.scale))
}

// Cmp compares two decimals. Returns -1 if d < other, 0 if equal, 1 if d > other.
func (d Decimal) Cmp(other Decimal) int {
	a, b, _ := align(d, other)
	return a.Cmp(b)
}

// Equal reports whether d == other.
func (d Decimal) Equal(other Decimal) bool {
	return d.Cmp(other) == 0
}

// IsZero reports whether d == 0.
func (d Decimal) IsZero() bool {
	return d.coef == [16]byte{}
}

// Sign returns -1, 0 or 1.
func (d Decimal) Sign() int {
	return coefToInt(d.coef).Sign()
}

// Scale returns the number of fractional digits.
func (d Decimal) Scale() int {
	return int(d.scale)
}

// IsInteger reports whether d has no fractional part.
func (d Decimal) IsInteger() bool {
	return d.scale == 0
}

// Int64 returns d as an int64. ok is false when d has a fractional part or
// does not fit.
func (d Decimal) Int64() (v int64, ok bool) {
	if d.scale != 0 {
		return 0, false
	}
	c := coefToInt(d.coef)
	if !c.IsInt64() {
		return 0, false
	}
	return c.Int64(), true
}

// Rat returns d as an exact rational.
func (d Decimal) Rat() *big.Rat {
	den := new(big.Int).Exp(bigTen, big.NewInt(int64(d.scale)), nil)
	return new(big.Rat).SetFrac(coefToInt(d.coef), den)
}

// String returns the decimal with a dot separator, e.g. "1200000" or "-0.25".
func (d Decimal) String() string {
	digits := coefToInt(d.coef).String()
	if d.scale == 0 {
		return digits
	}

	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	for len(digits) < int(d.scale)+1 {
		digits = "0" + digits
	}
	cut := len(digits) - int(d.scale)
	s := digits[:cut] + "." + digits[cut:]
	if neg {
		s = "-" + s
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(b []byte) error {
	v, err := ParseDecimal(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ============================================================
// Helper Functions
// ============================================================

// fromBig builds a reduced Decimal from coef * 10^(-scale). coef is consumed.
func fromBig(coef *big.Int, scale int) (Decimal, error) {
	if coef.Sign() == 0 {
		return Decimal{}, nil
	}
	q, r := new(big.Int), new(big.Int)
	for scale > 0 {
		q.QuoRem(coef, bigTen, r)
		if r.Sign() != 0 {
			break
		}
		coef.Set(q)
		scale--
	}
	if scale > maxScale || coef.BitLen() > 127 {
		return Decimal{}, ErrOverflow
	}
	return Decimal{scale: int8(scale), coef: intToCoef(coef)}, nil
}

// align returns both coefficients rescaled to the larger scale.
func align(a, b Decimal) (*big.Int, *big.Int, int) {
	ca, cb := coefToInt(a.coef), coefToInt(b.coef)
	switch {
	case a.scale < b.scale:
		ca.Mul(ca, pow10(int(b.scale-a.scale)))
		return ca, cb, int(b.scale)
	case a.scale > b.scale:
		cb.Mul(cb, pow10(int(a.scale-b.scale)))
	}
	return ca, cb, int(a.scale)
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// intToCoef converts a big.Int that fits in 127 bits to 16-byte two's complement.
func intToCoef(v *big.Int) [16]byte {
	var out [16]byte
	if v.Sign() < 0 {
		v = new(big.Int).Add(v, coefModulus)
	}
	b := v.Bytes()
	copy(out[16-len(b):], b)
	return out
}

// coefToInt converts a 16-byte two's complement coefficient to a fresh big.Int.
func coefToInt(coef [16]byte) *big.Int {
	v := new(big.Int).SetBytes(coef[:])
	if coef[0]&0x80 != 0 {
		v.Sub(v, coefModulus)
	}
	return v
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
