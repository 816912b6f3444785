package sterling

import "errors"

var (
	// ErrBadArgument is the error returned when an argument to a
	// classification call has the wrong shape, such as a property bag value
	// that cannot be represented as a string or a word list element that is
	// not a recognized WordList value. It is detected and returned before any
	// engine work begins.
	ErrBadArgument = errors.New("one or more of the arguments is invalid")

	// ErrWordListsUnknown is the error returned when the word-list
	// requirements of a language cannot be determined because its engine does
	// not report them. Classification itself never requires the count and
	// proceeds without it; only explicit queries return this error.
	ErrWordListsUnknown = errors.New("cannot determine word list requirements for lexer")

	// ErrEncoding is the error returned when buffer text cannot be decoded,
	// either because the encoding hint names an unsupported charset or
	// because a style run's bytes are not valid UTF-8. It is fatal to the
	// whole call; no partial token sequence is ever returned with it.
	ErrEncoding = errors.New("text is not decodable")

	// ErrNoLanguage is the error returned when the requested language has no
	// engine registered for it.
	ErrNoLanguage = errors.New("no lexer is registered for the language")
)
