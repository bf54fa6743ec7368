package chiffre

import (
	"errors"
	"testing"
)

func TestParseNumeral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Additive runs
		{"zéro", "0"},
		{"douze", "12"},
		{"vingt et un", "21"},
		{"soixante dix", "70"},
		{"soixante-quinze", "75"},
		{"quatre vingt", "80"},
		{"quatre-vingt-douze", "92"},

		// Collective nouns multiply the count before them
		{"dizaine", "10"},
		{"douzaine", "12"},
		{"couple", "2"},
		{"une dizaine", "10"},
		{"un couple", "2"},
		{"une vingtaine", "20"},
		{"deux douzaines", "24"},
		{"trois dizaines", "30"},
		{"deux couples", "4"},
		{"deux cent douzaines", "2400"},
		{"quatre vingt dizaines", "800"},

		// Magnitudes
		{"cent", "100"},
		{"mille", "1000"},
		{"cent mille", "100000"},
		{"deux cent mille", "200000"},
		{"deux cent trois mille", "203000"},
		{"deux mille cent", "2100"},
		{"un million deux cent mille", "1200000"},
		{"trois milliards deux cent millions", "3200000000"},
		{"cent mille millions", "100000000000"},
		{"mille neuf cent quatre vingt dix neuf", "1999"},
		{"cinq cent quatre vingt deux", "582"},
		{"trois centaines", "300"},
		{"quatre mille vingt", "4020"},
		{"soixante dix huit", "78"},
		{"un million deux cent mille 2 cent 23", "1200223"},

		// Digits, alone or mixed with words
		{"1 200 000", "1200000"},
		{"1,5 million", "1500000"},
		{"2 mille", "2000"},
		{"0,25", "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNumeral(tt.input)
			if err != nil {
				t.Fatalf("ParseNumeral(%q) error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseNumeral(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestComposeNumeral_Rescaling(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   string
	}{
		{"two levels", []Token{Magnitude(100), Magnitude(1000)}, "100000"},
		{"three levels", []Token{Magnitude(100), Magnitude(1000), Magnitude(1_000_000)}, "100000000000"},
		{"with operand", []Token{Additive(2), Magnitude(100), Magnitude(1000), Magnitude(1_000_000)}, "200000000000"},
		{"larger chunk stays closed", []Token{Additive(2), Magnitude(1000), Magnitude(100)}, "2100"},
		{"equal chunk stays closed", []Token{Magnitude(1000), Magnitude(1000)}, "2000"},
		{"collective folds larger chunks", []Token{Additive(3), Magnitude(1000), Magnitude(12)}, "36000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComposeNumeral(tt.tokens)
			if err != nil {
				t.Fatalf("ComposeNumeral error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComposeNumeral_AdditiveSum(t *testing.T) {
	// With no magnitude the result is the plain sum of the terms.
	values := []int64{1, 20, 300, 4, 17}
	var tokens []Token
	var sum int64
	for _, v := range values {
		tokens = append(tokens, Additive(v))
		sum += v
	}

	got, err := ComposeNumeral(tokens)
	if err != nil {
		t.Fatalf("ComposeNumeral error: %v", err)
	}
	if v, ok := got.Int64(); !ok || v != sum {
		t.Errorf("got %s, want %d", got, sum)
	}
}

func TestComposeNumeral_IgnoresOtherTokens(t *testing.T) {
	tokens := []Token{Additive(20), Conjunction(), Additive(1), Filler("environ"), {Kind: TokenEOF}}
	got, err := ComposeNumeral(tokens)
	if err != nil {
		t.Fatalf("ComposeNumeral error: %v", err)
	}
	if got.String() != "21" {
		t.Errorf("got %s, want 21", got)
	}
}

func TestComposeNumeral_Empty(t *testing.T) {
	cases := map[string][]Token{
		"nil":     nil,
		"filler":  {Filler("bonjour")},
		"conj":    {Conjunction()},
		"eof":     {{Kind: TokenEOF}},
		"article": {Article()},
	}

	for name, tokens := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ComposeNumeral(tokens)
			if !errors.Is(err, ErrEmptyNumeral) {
				t.Errorf("expected ErrEmptyNumeral, got %v", err)
			}
		})
	}

	if _, err := ParseNumeral(""); !errors.Is(err, ErrEmptyNumeral) {
		t.Errorf("ParseNumeral(\"\"): expected ErrEmptyNumeral, got %v", err)
	}
}

func TestComposeNumeral_ZeroIsNotEmpty(t *testing.T) {
	got, err := ComposeNumeral([]Token{Additive(0)})
	if err != nil {
		t.Fatalf("ComposeNumeral error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}
}

func TestComposeNumeral_Overflow(t *testing.T) {
	huge := MustParseDecimal("99999999999999999999999999999999999999")
	_, err := ComposeNumeral([]Token{Digits(huge), Magnitude(1_000_000_000)})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	var ce *ComposeError
	if !errors.As(err, &ce) {
		t.Errorf("expected *ComposeError, got %T", err)
	}
}

func TestCanonicalNumber_RoundTrip(t *testing.T) {
	phrases := []string{
		"un million deux cent mille",
		"quatre vingt douze",
		"1,5",
		"cent mille millions",
		"deux mille cent",
		"zéro",
	}

	for _, p := range phrases {
		t.Run(p, func(t *testing.T) {
			v, err := ParseNumeral(p)
			if err != nil {
				t.Fatalf("ParseNumeral(%q) error: %v", p, err)
			}
			canon := CanonicalNumber(v)
			back, err := ParseNumeral(canon)
			if err != nil {
				t.Fatalf("ParseNumeral(%q) error: %v", canon, err)
			}
			if !back.Equal(v) {
				t.Errorf("round trip %q -> %q -> %s, want %s", p, canon, back, v)
			}
		})
	}

	if got := CanonicalNumber(MustParseDecimal("1.5")); got != "1,5" {
		t.Errorf("CanonicalNumber(1.5) = %q, want %q", got, "1,5")
	}
}

func TestParseNumeralWithOptions(t *testing.T) {
	res, err := ParseNumeralWithOptions("environ vingt et un", ParseOptions{Tolerant: true})
	if err != nil {
		t.Fatalf("tolerant: %v", err)
	}
	if res.Value.String() != "21" || len(res.Warnings) != 1 {
		t.Errorf("tolerant: got %s with warnings %v", res.Value, res.Warnings)
	}

	_, err = ParseNumeralWithOptions("environ vingt et un", ParseOptions{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("strict: expected *ParseError, got %v", err)
	}

	res, err = ParseNumeralWithOptions("vingt et un", ParseOptions{})
	if err != nil || res.Value.String() != "21" {
		t.Errorf("strict clean phrase: got %v, %v", res, err)
	}
}
