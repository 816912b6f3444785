package sterling

import (
	"fmt"
	"unicode/utf8"

	"github.com/dekarrin/sterling/internal/bufacc"
)

// tokenSink is where the style-run scan delivers tokens. There is exactly one
// scan implementation and two sinks: one that collects tokens into a slice
// and one that pushes them into a caller's callback.
type tokenSink interface {
	push(tok Token) error
}

// listSink collects pushed tokens in order.
type listSink struct {
	tokens []Token
}

func (sink *listSink) push(tok Token) error {
	sink.tokens = append(sink.tokens, tok)
	return nil
}

// funcSink hands each pushed token to a TokenFunc. An error from the func
// stops the push and is returned as-is.
type funcSink struct {
	fn TokenFunc
}

func (sink funcSink) push(tok Token) error {
	return sink.fn(tok)
}

// tokenizeStyleRuns walks buf and its parallel style array, emitting one
// token per maximal run of equal style bytes into sink. buf and styles must
// be the same length. The scan visits every boundary index from 0 to
// len(buf) inclusive; a run closes at a style change or at end of buffer, so
// the emitted tokens partition the buffer exactly, in increasing order, with
// no gaps or overlaps.
//
// Each run's bytes must be valid UTF-8 on their own. A run that is not, such
// as when an engine changes style in the middle of a multi-byte character,
// aborts the whole scan with an error matching ErrEncoding; no further tokens
// are emitted after a failure of any kind, including an error returned by the
// sink itself.
func tokenizeStyleRuns(buf []byte, styles []byte, acc *bufacc.Accessor, sink tokenSink) error {
	startIndex := 0
	startLine := 0
	startCol := 0

	for i := 0; i <= len(buf); i++ {
		if i > 0 && (i == len(buf) || styles[i] != styles[i-1]) {
			line := acc.LineAt(i - 1)
			col := acc.ColumnAt(i - 1)

			runBytes := buf[startIndex:i]
			if !utf8.Valid(runBytes) {
				return fmt.Errorf("bytes %d-%d of buffer do not form valid UTF-8: %w", startIndex, i-1, ErrEncoding)
			}

			tok := Token{
				Style:       int(styles[i-1]),
				Text:        string(runBytes),
				StartIndex:  startIndex,
				EndIndex:    i - 1,
				StartLine:   startLine,
				StartColumn: startCol,
				EndLine:     line,
				EndColumn:   col,
			}

			if err := sink.push(tok); err != nil {
				return err
			}

			if i != len(buf) {
				startIndex = i

				// the new run's start position is queried fresh rather than
				// derived from the old run's end, so the two cannot drift
				startLine = acc.LineAt(i)
				startCol = acc.ColumnAt(i)
			}
		}
	}

	return nil
}
