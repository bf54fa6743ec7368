package chiffre

import (
	"math/big"
	"strings"
	"time"
)

// ============================================================
// Canonical Rendering
// ============================================================
//
// Canonical forms are digit phrases the lexer reads back to the same value.

// CanonicalNumber returns the canonical numeral: plain digits with a French
// decimal comma and no trailing fractional zeros ("1200000", "1,5").
func CanonicalNumber(d Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

// CanonicalDuration returns the canonical duration phrase in days, hours,
// minutes and seconds, omitting zero components: "1 jour 2 heures 30
// secondes", "0,5 seconde", "0 seconde". Negative durations render their
// magnitude.
func CanonicalDuration(d time.Duration) string {
	ns := big.NewInt(int64(d))
	ns.Abs(ns)

	var parts []string
	for _, u := range []struct {
		size time.Duration
		name string
	}{
		{day, "jour"},
		{time.Hour, "heure"},
		{time.Minute, "minute"},
	} {
		count, rem := new(big.Int).QuoRem(ns, big.NewInt(int64(u.size)), new(big.Int))
		if count.Sign() > 0 {
			parts = append(parts, canonPart(count, 0, u.name))
		}
		ns = rem
	}
	if ns.Sign() > 0 || len(parts) == 0 {
		parts = append(parts, canonPart(ns, 9, "seconde"))
	}
	return strings.Join(parts, " ")
}

// canonPart renders count * 10^(-scale) followed by the unit name, plural
// from two onwards as in French usage.
func canonPart(count *big.Int, scale int, name string) string {
	n, err := fromBig(count, scale)
	if err != nil {
		return count.String() + " " + name
	}
	if n.Cmp(DecimalFromInt64(2)) >= 0 {
		name += "s"
	}
	return CanonicalNumber(n) + " " + name
}
