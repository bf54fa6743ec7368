package chiffre

import (
	"errors"
	"sync"
	"testing"
	"time"
)

const testDay = 24 * time.Hour

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		// Fractional
		{"3 quart d'heure", 45 * time.Minute},
		{"trois quarts d'heure", 45 * time.Minute},
		{"une demi-heure", 30 * time.Minute},
		{"1 demi minute", 30 * time.Second},

		// Interval + fraction
		{"2 ans et demi", 912*testDay + 12*time.Hour},
		{"9 semaines et demi", 66*testDay + 12*time.Hour},
		{"deux heures et demie", 2*time.Hour + 30*time.Minute},
		{"une heure et quart", time.Hour + 15*time.Minute},

		// Interval + number
		{"1h30", 90 * time.Minute},
		{"2 minutes 30", 2*time.Minute + 30*time.Second},
		{"1 jour 2h30", 26*time.Hour + 30*time.Minute},
		{"1 heure 2 minutes 30", time.Hour + 2*time.Minute + 30*time.Second},

		// Full interval
		{"4 mois, 3 semaines, 2 jours, 1 heure", 135*testDay + time.Hour},
		{"2 heures et 3 minutes", 2*time.Hour + 3*time.Minute},
		{"2h4mn5s", 2*time.Hour + 4*time.Minute + 5*time.Second},
		{"vingt quatre heures", 24 * time.Hour},
		{"quatre vingt jours", 80 * testDay},
		{"un an", 365 * testDay},
		{"1 mois", 28 * testDay},
		{"1,5 heure", 90 * time.Minute},
		{"0 seconde", 0},
		{"pendant 2 heures", 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if err != nil {
				t.Fatalf("ParseDuration(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		input string
		want  Shape
	}{
		{"3 quarts d'heure", ShapeFractional},
		{"une demi-heure", ShapeFractional},
		{"2 ans et demi", ShapeIntervalFraction},
		{"1 jour, 2 heures et quart", ShapeIntervalFraction},
		{"1h30", ShapeIntervalNumber},
		{"2 jours 3", ShapeIntervalNumber},
		{"2h4mn5s", ShapeFullInterval},
		{"2 heures et 3 minutes", ShapeFullInterval},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			got, err := DetectShape(tokens)
			if err != nil {
				t.Fatalf("DetectShape error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectShape(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestShapePrecedence(t *testing.T) {
	want := []Shape{ShapeFractional, ShapeIntervalFraction, ShapeIntervalNumber, ShapeFullInterval}
	if len(ShapePrecedence) != len(want) {
		t.Fatalf("got %v, want %v", ShapePrecedence, want)
	}
	for i := range want {
		if ShapePrecedence[i] != want[i] {
			t.Errorf("precedence %d: got %s, want %s", i, ShapePrecedence[i], want[i])
		}
	}
}

func TestComposeDuration_Tokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		shape  Shape
		want   time.Duration
	}{
		{
			"fractional",
			[]Token{Additive(3), Fraction(FractionQuarter), Article(), Unit(UnitHour)},
			ShapeFractional,
			45 * time.Minute,
		},
		{
			"fraction of last unit",
			[]Token{Additive(1), Unit(UnitDay), Conjunction(), Fraction(FractionHalf)},
			ShapeIntervalFraction,
			36 * time.Hour,
		},
		{
			"minutes after hours",
			[]Token{Digits(MustParseDecimal("1")), Unit(UnitHour), Digits(MustParseDecimal("30"))},
			ShapeIntervalNumber,
			90 * time.Minute,
		},
		{
			"seconds after minutes",
			[]Token{Additive(5), Unit(UnitMinute), Additive(20), Additive(5)},
			ShapeIntervalNumber,
			5*time.Minute + 25*time.Second,
		},
		{
			"magnitudes inside a part",
			[]Token{Magnitude(100), Magnitude(1000), Unit(UnitSecond)},
			ShapeFullInterval,
			100_000 * time.Second,
		},
		{
			"trailing EOF",
			[]Token{Additive(1), Unit(UnitWeek), {Kind: TokenEOF}},
			ShapeFullInterval,
			7 * testDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComposeDuration(tt.tokens, tt.shape)
			if err != nil {
				t.Fatalf("ComposeDuration error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeDuration_Errors(t *testing.T) {
	lex := func(s string) []Token {
		tokens, err := NewLexer(s).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q) failed: %v", s, err)
		}
		return tokens
	}

	tests := []struct {
		name   string
		tokens []Token
		shape  Shape
		want   error
	}{
		{"no sub-unit", lex("2 jours 3"), ShapeIntervalNumber, ErrNoSubUnit},
		{"unknown unit", []Token{Additive(2), Unit(UnitUnknown)}, ShapeFullInterval, ErrUnknownUnit},
		{"out of range unit", []Token{Additive(2), Unit(UnitKind(99))}, ShapeFullInterval, ErrUnknownUnit},
		{"unknown fraction", []Token{Additive(1), Fraction(FractionUnknown), Unit(UnitHour)}, ShapeFractional, ErrUnknownFraction},
		{"empty", nil, ShapeFullInterval, ErrEmptyNumeral},
		{"unit without numeral", []Token{Unit(UnitHour)}, ShapeFullInterval, ErrEmptyNumeral},
		{"wrong shape", lex("1h30"), ShapeFullInterval, ErrShapeMismatch},
		{"missing fraction", lex("2 heures et"), ShapeIntervalFraction, ErrShapeMismatch},
		{"unknown shape", lex("1h"), Shape(42), ErrShapeMismatch},
		{"overflow", lex("1000 ans"), ShapeFullInterval, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComposeDuration(tt.tokens, tt.shape)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestComposeDuration_ErrorPosition(t *testing.T) {
	tokens, _ := NewLexer("2 jours 3").Tokenize()
	_, err := ComposeDuration(tokens, ShapeIntervalNumber)

	var ce *ComposeError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ComposeError, got %T: %v", err, err)
	}
	if ce.Text != "3" || ce.Pos.Offset != 8 {
		t.Errorf("error located at %q offset %d, want \"3\" offset 8", ce.Text, ce.Pos.Offset)
	}
}

func TestParseDuration_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyNumeral},
		{"heures", ErrEmptyNumeral},
		{"2 heures et", ErrShapeMismatch},
		{"2 3", ErrShapeMismatch},
		{"2 jours 3", ErrNoSubUnit},
		{"1000 ans", ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDuration(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseDuration(%q): expected %v, got %v", tt.input, tt.want, err)
			}
		})
	}

	_, err := ParseDuration("9999999999999999999999999999999999999999 heures")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("oversized literal: expected *ParseError, got %v", err)
	}
}

func TestParseDurationWithOptions(t *testing.T) {
	t.Run("tolerant", func(t *testing.T) {
		res, err := ParseDurationWithOptions("pendant environ 2 heures", ParseOptions{Tolerant: true})
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if res.Value != 2*time.Hour {
			t.Errorf("Value = %v, want 2h", res.Value)
		}
		if res.Shape != ShapeFullInterval {
			t.Errorf("Shape = %s, want %s", res.Shape, ShapeFullInterval)
		}
		if len(res.Warnings) != 2 {
			t.Errorf("expected 2 warnings, got %v", res.Warnings)
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, err := ParseDurationWithOptions("pendant 2 heures", ParseOptions{})
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if pe.Pos.Offset != 0 {
			t.Errorf("error offset %d, want 0", pe.Pos.Offset)
		}
	})

	t.Run("strict accepts clean phrase", func(t *testing.T) {
		res, err := ParseDurationWithOptions("2 ans et demi", ParseOptions{})
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if res.Shape != ShapeIntervalFraction || len(res.Warnings) != 0 {
			t.Errorf("got shape %s, warnings %v", res.Shape, res.Warnings)
		}
	})
}

func TestCanonicalDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 seconde"},
		{2 * time.Second, "2 secondes"},
		{1500 * time.Millisecond, "1,5 seconde"},
		{90 * time.Minute, "1 heure 30 minutes"},
		{26*time.Hour + 30*time.Minute, "1 jour 2 heures 30 minutes"},
		{912*testDay + 12*time.Hour, "912 jours 12 heures"},
		{-90 * time.Minute, "1 heure 30 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := CanonicalDuration(tt.d); got != tt.want {
				t.Errorf("CanonicalDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestCanonicalDuration_RoundTrip(t *testing.T) {
	durations := []time.Duration{
		0,
		time.Nanosecond,
		1500 * time.Nanosecond,
		45 * time.Minute,
		time.Hour + time.Nanosecond,
		26*time.Hour + 30*time.Minute + 15*time.Second,
		912*testDay + 12*time.Hour,
	}

	for _, d := range durations {
		t.Run(d.String(), func(t *testing.T) {
			canon := CanonicalDuration(d)
			back, err := ParseDuration(canon)
			if err != nil {
				t.Fatalf("ParseDuration(%q) error: %v", canon, err)
			}
			if back != d {
				t.Errorf("round trip %v -> %q -> %v", d, canon, back)
			}
		})
	}
}

func TestParseDuration_Concurrent(t *testing.T) {
	inputs := map[string]time.Duration{
		"1h30":             90 * time.Minute,
		"2 ans et demi":    912*testDay + 12*time.Hour,
		"3 quarts d'heure": 45 * time.Minute,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for input, want := range inputs {
			wg.Add(1)
			go func(input string, want time.Duration) {
				defer wg.Done()
				got, err := ParseDuration(input)
				if err != nil || got != want {
					t.Errorf("ParseDuration(%q) = %v, %v; want %v", input, got, err, want)
				}
			}(input, want)
		}
	}
	wg.Wait()
}
