// Package chiffre reads French quantities and durations written in words or
// digits and resolves them to exact values.
//
//	chiffre.ParseNumeral("un million deux cent mille")   // 1200000
//	chiffre.ParseNumeral("quatre-vingt-douze")           // 92
//	chiffre.ParseDuration("deux heures et demie")        // 2h30m
//	chiffre.ParseDuration("1h30")                        // 1h30m
//	chiffre.ParseDuration("3 quarts d'heure")            // 45m
//
// # Pipeline
//
// Text is classified by a Lexer into Tokens (numerals, magnitudes, digits,
// units, fractions, conjunctions, articles, filler). The composition engine
// then folds tokens into a value:
//
//   - ComposeNumeral sums additive terms into chunks, multiplies chunks by
//     magnitude words and adds the chunks up.
//   - ComposeDuration reads one of four phrase shapes (see Shape) and calls
//     ComposeNumeral for every numeral span it meets.
//
// Callers with their own classifier can build Tokens directly and call the
// composers; the lexer is one producer among others.
//
// # Units
//
// Durations use fixed conventions, not calendar arithmetic:
//
//	an      365 jours
//	mois    4 semaines
//	semaine 7 jours
//	jour, heure, minute, seconde
//
// A bare number after hours counts minutes, after minutes counts seconds.
//
// # Errors
//
// Composition never guesses. Empty numerals, unknown units or fractions, a
// bare number after a unit with no sub-unit and out-of-range results are
// reported through ErrEmptyNumeral, ErrUnknownUnit, ErrUnknownFraction,
// ErrNoSubUnit, ErrShapeMismatch and ErrOverflow, usually wrapped in a
// *ComposeError that carries the offending token's position.
package chiffre
