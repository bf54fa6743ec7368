package chiffre

import (
	"math/big"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnitKind is a time unit recognized in duration phrases.
type UnitKind uint8

const (
	UnitUnknown UnitKind = iota
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
)

// String returns the unit name.
func (u UnitKind) String() string {
	switch u {
	case UnitYear:
		return "year"
	case UnitMonth:
		return "month"
	case UnitWeek:
		return "week"
	case UnitDay:
		return "day"
	case UnitHour:
		return "hour"
	case UnitMinute:
		return "minute"
	case UnitSecond:
		return "second"
	default:
		return "unknown"
	}
}

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Base durations are conventions, not calendar arithmetic: a month is four
// weeks and a year is 365 days.
var unitBase = map[UnitKind]time.Duration{
	UnitYear:   365 * day,
	UnitMonth:  4 * week,
	UnitWeek:   week,
	UnitDay:    day,
	UnitHour:   time.Hour,
	UnitMinute: time.Minute,
	UnitSecond: time.Second,
}

var subUnits = map[UnitKind]UnitKind{
	UnitHour:   UnitMinute,
	UnitMinute: UnitSecond,
}

// Base returns the fixed duration of one unit.
func (u UnitKind) Base() (time.Duration, bool) {
	d, ok := unitBase[u]
	return d, ok
}

// SubUnit returns the finer unit implied by a bare number following u
// ("1h30" reads 30 as minutes). Only hours and minutes have one.
func (u UnitKind) SubUnit() (UnitKind, bool) {
	s, ok := subUnits[u]
	return s, ok
}

// FractionKind is a fraction word.
type FractionKind uint8

const (
	FractionUnknown FractionKind = iota
	FractionQuarter
	FractionHalf
)

// String returns the fraction name.
func (f FractionKind) String() string {
	switch f {
	case FractionQuarter:
		return "quarter"
	case FractionHalf:
		return "half"
	default:
		return "unknown"
	}
}

var fractionRatio = map[FractionKind][2]int64{
	FractionQuarter: {1, 4},
	FractionHalf:    {1, 2},
}

// Ratio returns the exact value of the fraction.
func (f FractionKind) Ratio() (*big.Rat, bool) {
	r, ok := fractionRatio[f]
	if !ok {
		return nil, false
	}
	return big.NewRat(r[0], r[1]), true
}

// ============================================================
// Lexicon
// ============================================================

// lexeme is what a folded word classifies as.
type lexeme struct {
	kind     TokenKind
	value    int64
	unit     UnitKind
	fraction FractionKind
}

func additive(v int64) lexeme { return lexeme{kind: TokenAdditive, value: v} }
func magnitude(v int64) lexeme { return lexeme{kind: TokenMagnitude, value: v} }
func unit(u UnitKind) lexeme { return lexeme{kind: TokenUnit, unit: u} }
func fraction(f FractionKind) lexeme { return lexeme{kind: TokenFraction, fraction: f} }

// lexicon is keyed by folded word (lower case, accents removed).
var lexicon = map[string]lexeme{
	"zero":     additive(0),
	"un":       additive(1),
	"une":      additive(1),
	"deux":     additive(2),
	"trois":    additive(3),
	"quatre":   additive(4),
	"cinq":     additive(5),
	"six":      additive(6),
	"sept":     additive(7),
	"huit":     additive(8),
	"neuf":     additive(9),
	"dix":      additive(10),
	"onze":     additive(11),
	"douze":    additive(12),
	"treize":   additive(13),
	"quatorze": additive(14),
	"quinze":   additive(15),
	"seize":    additive(16),

	"vingt":     additive(20),
	"vingts":    additive(20),
	"trente":    additive(30),
	"quarante":  additive(40),
	"cinquante": additive(50),
	"soixante":  additive(60),

	"dizaine":      magnitude(10),
	"dizaines":     magnitude(10),
	"douzaine":     magnitude(12),
	"douzaines":    magnitude(12),
	"quinzaine":    magnitude(15),
	"quinzaines":   magnitude(15),
	"vingtaine":    magnitude(20),
	"vingtaines":   magnitude(20),
	"trentaine":    magnitude(30),
	"trentaines":   magnitude(30),
	"quarantaine":  magnitude(40),
	"quarantaines": magnitude(40),
	"cinquantaine": magnitude(50),
	"soixantaine":  magnitude(60),

	"couple":  magnitude(2),
	"couples": magnitude(2),

	"cent":      magnitude(100),
	"cents":     magnitude(100),
	"centaine":  magnitude(100),
	"centaines": magnitude(100),
	"mil":       magnitude(1_000),
	"mille":     magnitude(1_000),
	"milles":    magnitude(1_000),
	"millier":   magnitude(1_000),
	"milliers":  magnitude(1_000),
	"million":   magnitude(1_000_000),
	"millions":  magnitude(1_000_000),
	"milliard":  magnitude(1_000_000_000),
	"milliards": magnitude(1_000_000_000),

	"a":        unit(UnitYear),
	"an":       unit(UnitYear),
	"ans":      unit(UnitYear),
	"annee":    unit(UnitYear),
	"annees":   unit(UnitYear),
	"m":        unit(UnitMonth),
	"mois":     unit(UnitMonth),
	"sem":      unit(UnitWeek),
	"semaine":  unit(UnitWeek),
	"semaines": unit(UnitWeek),
	"j":        unit(UnitDay),
	"jour":     unit(UnitDay),
	"jours":    unit(UnitDay),
	"journee":  unit(UnitDay),
	"journees": unit(UnitDay),
	"h":        unit(UnitHour),
	"heure":    unit(UnitHour),
	"heures":   unit(UnitHour),
	"mn":       unit(UnitMinute),
	"min":      unit(UnitMinute),
	"minute":   unit(UnitMinute),
	"minutes":  unit(UnitMinute),
	"s":        unit(UnitSecond),
	"sec":      unit(UnitSecond),
	"seconde":  unit(UnitSecond),
	"secondes": unit(UnitSecond),

	"quart":  fraction(FractionQuarter),
	"quarts": fraction(FractionQuarter),
	"demi":   fraction(FractionHalf),
	"demie":  fraction(FractionHalf),
	"demis":  fraction(FractionHalf),
	"demies": fraction(FractionHalf),

	"et": {kind: TokenConjunction},
	"d":  {kind: TokenArticle},
	"de": {kind: TokenArticle},
}

// foldWord lower-cases a word and strips its diacritics ("Journée" -> "journee").
func foldWord(word string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, word)
	if err != nil {
		folded = word
	}
	return strings.ToLower(folded)
}
