package sterling

// Token is a single unit of classified source text: one maximal run of
// contiguous bytes that the lexer engine assigned the same style to, along
// with the position of that run in the buffer.
//
// Index fields are byte offsets into the UTF-8 buffer that was classified and
// EndIndex is the offset of the run's final byte, not one past it. Line and
// column numbers are 0-based and columns count bytes from the start of the
// line, not runes; multi-byte characters will advance the column by more than
// one. That metric is load-bearing for existing consumers and is deliberately
// not grapheme-aware.
//
// Tokens are never modified after they are produced.
type Token struct {
	// Style is the lexical style the engine assigned to the run, e.g. 11.
	Style int `json:"style"`

	// Text is the text of the run, decoded from UTF-8.
	Text string `json:"text"`

	// StartIndex is the byte offset in the buffer where the run begins.
	StartIndex int `json:"start_index"`

	// EndIndex is the byte offset of the last byte of the run.
	EndIndex int `json:"end_index"`

	// StartLine is the 0-based line the run begins on.
	StartLine int `json:"start_line"`

	// StartColumn is the 0-based byte column the run begins at.
	StartColumn int `json:"start_column"`

	// EndLine is the 0-based line the run's final byte is on.
	EndLine int `json:"end_line"`

	// EndColumn is the 0-based byte column of the run's final byte.
	EndColumn int `json:"end_column"`
}

// TokenFunc is a callback that receives tokens as they are produced during a
// classification call. It is invoked synchronously on the same goroutine that
// called [Styler.TokenizeByStyle], in strictly increasing StartIndex order,
// and before the scan continues past the token. Returning a non-nil error
// aborts the rest of the scan immediately and the error is propagated to the
// caller of TokenizeByStyle.
//
// The callback must not start another classification on the same Styler; the
// underlying engine is not reentrant.
type TokenFunc func(tok Token) error
