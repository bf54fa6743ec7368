package chiffre

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenKind tags the variant held by a Token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Numeral-bearing
	TokenAdditive  // un, seize, vingt, quatre-vingt
	TokenMagnitude // cent, mille, million, milliard, dizaine
	TokenDigits    // 12, 1,5, 1 200 000

	// Duration vocabulary
	TokenUnit        // h, heures, jours, ans
	TokenFraction    // quart, demi
	TokenConjunction // et, ","
	TokenArticle     // d', de

	// Anything else
	TokenFiller
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "ERROR"
	case TokenAdditive:
		return "ADDITIVE"
	case TokenMagnitude:
		return "MAGNITUDE"
	case TokenDigits:
		return "DIGITS"
	case TokenUnit:
		return "UNIT"
	case TokenFraction:
		return "FRACTION"
	case TokenConjunction:
		return "CONJ"
	case TokenArticle:
		return "ARTICLE"
	case TokenFiller:
		return "FILLER"
	default:
		return "UNKNOWN"
	}
}

// Position is a location in the source text. Offset counts runes.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a classified word of a French phrase. Only the payload field
// matching Kind is meaningful: Value for numeral kinds, Unit for TokenUnit,
// Fraction for TokenFraction.
type Token struct {
	Kind     TokenKind
	Text     string
	Pos      Position
	Value    Decimal
	Unit     UnitKind
	Fraction FractionKind
}

// IsNumeral reports whether the token carries a numeric value.
func (t Token) IsNumeral() bool {
	switch t.Kind {
	case TokenAdditive, TokenMagnitude, TokenDigits:
		return true
	}
	return false
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenAdditive, TokenMagnitude, TokenDigits:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
	case TokenUnit:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Unit)
	case TokenFraction:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Fraction)
	}
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Constructors for callers that classify text themselves.

func Additive(v int64) Token {
	d := DecimalFromInt64(v)
	return Token{Kind: TokenAdditive, Text: d.String(), Value: d}
}

func Magnitude(v int64) Token {
	d := DecimalFromInt64(v)
	return Token{Kind: TokenMagnitude, Text: d.String(), Value: d}
}

func Digits(v Decimal) Token {
	return Token{Kind: TokenDigits, Text: v.String(), Value: v}
}

func Unit(u UnitKind) Token {
	return Token{Kind: TokenUnit, Text: u.String(), Unit: u}
}

func Fraction(f FractionKind) Token {
	return Token{Kind: TokenFraction, Text: f.String(), Fraction: f}
}

func Conjunction() Token {
	return Token{Kind: TokenConjunction, Text: "et"}
}

func Article() Token {
	return Token{Kind: TokenArticle, Text: "de"}
}

func Filler(text string) Token {
	return Token{Kind: TokenFiller, Text: text}
}

// Lexer classifies French numeral and duration text into tokens.
type Lexer struct {
	input  []rune
	pos    int // Current rune index
	line   int // 1-based
	col    int // 1-based
	tokens []Token
	err    error
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

// Tokenize returns all tokens from the input, terminated by TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok := l.nextToken()
		l.tokens = append(l.tokens, tok)
		if tok.Kind == TokenEOF || tok.Kind == TokenError {
			break
		}
	}
	if l.err != nil {
		return l.tokens, l.err
	}
	return l.tokens, nil
}

// nextToken returns the next token.
func (l *Lexer) nextToken() Token {
	l.skipSeparators()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}
	}

	startPos := l.currentPos()
	ch := l.peek()

	switch {
	case ch == ',':
		// A comma between digits is consumed by scanNumber.
		l.advance()
		return Token{Kind: TokenConjunction, Text: ",", Pos: startPos}
	case isDigitRune(ch):
		return l.scanNumber()
	case unicode.IsLetter(ch):
		return l.scanWord()
	}

	l.advance()
	return Token{Kind: TokenFiller, Text: string(ch), Pos: startPos}
}

// scanNumber scans a digit literal: plain ("1200"), grouped ("1 200",
// "1.200"), decimal ("1,5") or both ("1.200,5").
func (l *Lexer) scanNumber() Token {
	startPos := l.currentPos()
	start := l.pos

	var lit strings.Builder
	l.scanDigits(&lit)

	// Thousands groups only follow a leading group of at most three digits.
	grouped := false
	if l.pos-start <= 3 {
		for isGroupSeparator(l.peek()) && l.threeDigitsAt(l.pos+1) {
			l.advance()
			l.scanDigits(&lit)
			grouped = true
		}
	}

	next := l.peekAt(1)
	if (l.peek() == ',' || (l.peek() == '.' && !grouped)) && isDigitRune(next) {
		l.advance()
		lit.WriteByte('.')
		l.scanDigits(&lit)
	}

	text := string(l.input[start:l.pos])
	v, err := ParseDecimal(lit.String())
	if err != nil {
		l.err = &ParseError{Message: fmt.Sprintf("invalid number %q: %v", text, err), Pos: startPos}
		return Token{Kind: TokenError, Text: text, Pos: startPos}
	}
	return Token{Kind: TokenDigits, Text: text, Pos: startPos, Value: v}
}

// scanWord scans a run of letters and classifies it. "quatre vingt" and
// "quatre-vingts" are read as a single 80.
func (l *Lexer) scanWord() Token {
	startPos := l.currentPos()
	start := l.pos
	l.skipLetters()

	folded := foldWord(string(l.input[start:l.pos]))
	if folded == "quatre" {
		if end, ok := l.vingtAfter(l.pos); ok {
			for l.pos < end {
				l.advance()
			}
			text := string(l.input[start:l.pos])
			return Token{Kind: TokenAdditive, Text: text, Pos: startPos, Value: DecimalFromInt64(80)}
		}
	}

	text := string(l.input[start:l.pos])
	lx, ok := lexicon[folded]
	if !ok {
		return Token{Kind: TokenFiller, Text: text, Pos: startPos}
	}

	tok := Token{Kind: lx.kind, Text: text, Pos: startPos}
	switch lx.kind {
	case TokenAdditive, TokenMagnitude:
		tok.Value = DecimalFromInt64(lx.value)
	case TokenUnit:
		tok.Unit = lx.unit
	case TokenFraction:
		tok.Fraction = lx.fraction
	}
	return tok
}

// vingtAfter reports where a "vingt" word following position i ends.
func (l *Lexer) vingtAfter(i int) (int, bool) {
	j := i
	for j < len(l.input) && isWordSeparator(l.input[j]) {
		j++
	}
	if j == i {
		return 0, false
	}
	k := j
	for k < len(l.input) && unicode.IsLetter(l.input[k]) {
		k++
	}
	switch foldWord(string(l.input[j:k])) {
	case "vingt", "vingts":
		return k, true
	}
	return 0, false
}

// skipSeparators skips whitespace, hyphens and apostrophes.
func (l *Lexer) skipSeparators() {
	for l.pos < len(l.input) && isWordSeparator(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) skipLetters() {
	for l.pos < len(l.input) && unicode.IsLetter(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) scanDigits(sb *strings.Builder) {
	for l.pos < len(l.input) && isDigitRune(l.peek()) {
		sb.WriteRune(l.peek())
		l.advance()
	}
}

// threeDigitsAt reports whether exactly three digits start at i.
func (l *Lexer) threeDigitsAt(i int) bool {
	if i+3 > len(l.input) {
		return false
	}
	for _, r := range l.input[i : i+3] {
		if !isDigitRune(r) {
			return false
		}
	}
	return i+3 == len(l.input) || !isDigitRune(l.input[i+3])
}

// Helper methods

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// Character classification

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordSeparator(r rune) bool {
	switch r {
	case '-', '\'', '\u2019':
		return true
	}
	return unicode.IsSpace(r)
}

// isGroupSeparator matches thousands separators: space, no-break spaces, dot.
func isGroupSeparator(r rune) bool {
	switch r {
	case ' ', '\u00a0', '\u202f', '.':
		return true
	}
	return false
}

// TokenStream provides a stream interface over tokens.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream creates a token stream from tokens.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the current token without advancing.
func (ts *TokenStream) Peek() Token {
	return ts.PeekN(0)
}

// PeekN returns the token N positions ahead.
func (ts *TokenStream) PeekN(n int) Token {
	idx := ts.pos + n
	if idx >= len(ts.tokens) {
		return Token{Kind: TokenEOF, Pos: ts.endPos()}
	}
	return ts.tokens[idx]
}

// Advance moves to the next token and returns the current one.
func (ts *TokenStream) Advance() Token {
	tok := ts.Peek()
	if ts.pos < len(ts.tokens) {
		ts.pos++
	}
	return tok
}

// Match returns true and advances if the current token is of kind k.
func (ts *TokenStream) Match(k TokenKind) bool {
	if ts.Peek().Kind == k {
		ts.Advance()
		return true
	}
	return false
}

// AtEnd returns true if at end of stream.
func (ts *TokenStream) AtEnd() bool {
	return ts.Peek().Kind == TokenEOF
}

// Position returns the current position in the stream.
func (ts *TokenStream) Position() int {
	return ts.pos
}

// Reset resets to a previous position.
func (ts *TokenStream) Reset(pos int) {
	ts.pos = pos
}

func (ts *TokenStream) endPos() Position {
	if len(ts.tokens) == 0 {
		return Position{Line: 1, Column: 1}
	}
	return ts.tokens[len(ts.tokens)-1].Pos
}
