package errcode

const (
	ErrUnknown = 20000000 + iota
	ErrInvalid
	ErrEmptyNumeral
	ErrUnknownUnit
	ErrUnknownFraction
	ErrNoSubUnit
	ErrShapeMismatch
	ErrOverflow
	ErrSyntax
	ErrCanceled
	ErrInternal
)
