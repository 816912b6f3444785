package sterling

import (
	"errors"
	"testing"

	"github.com/dekarrin/sterling/internal/bufacc"
	"github.com/stretchr/testify/assert"
)

func runScan(t *testing.T, buf string, styles []byte) ([]Token, error) {
	t.Helper()

	b := []byte(buf)
	if len(b) != len(styles) {
		t.Fatalf("test case is malformed; buffer is %d bytes but %d styles given", len(b), len(styles))
	}

	sink := &listSink{}
	err := tokenizeStyleRuns(b, styles, bufacc.New(b), sink)
	return sink.tokens, err
}

func Test_tokenizeStyleRuns_singleRun(t *testing.T) {
	assert := assert.New(t)

	toks, err := runScan(t, "ab", []byte{1, 1})
	if !assert.NoError(err) {
		return
	}

	expect := []Token{
		{
			Style:       1,
			Text:        "ab",
			StartIndex:  0,
			EndIndex:    1,
			StartLine:   0,
			StartColumn: 0,
			EndLine:     0,
			EndColumn:   1,
		},
	}
	assert.Equal(expect, toks)
}

func Test_tokenizeStyleRuns_twoRuns(t *testing.T) {
	assert := assert.New(t)

	toks, err := runScan(t, "ab", []byte{1, 2})
	if !assert.NoError(err) {
		return
	}

	expect := []Token{
		{Style: 1, Text: "a", StartIndex: 0, EndIndex: 0, StartLine: 0, StartColumn: 0, EndLine: 0, EndColumn: 0},
		{Style: 2, Text: "b", StartIndex: 1, EndIndex: 1, StartLine: 0, StartColumn: 1, EndLine: 0, EndColumn: 1},
	}
	assert.Equal(expect, toks)
}

func Test_tokenizeStyleRuns_emptyBuffer(t *testing.T) {
	assert := assert.New(t)

	toks, err := runScan(t, "", []byte{})
	assert.NoError(err)
	assert.Empty(toks)
}

func Test_tokenizeStyleRuns_multiLine(t *testing.T) {
	assert := assert.New(t)

	toks, err := runScan(t, "ab\ncd", []byte{1, 1, 1, 2, 2})
	if !assert.NoError(err) {
		return
	}

	if !assert.Len(toks, 2) {
		return
	}

	assert.Equal("ab\n", toks[0].Text)
	assert.Equal(0, toks[0].StartLine)
	assert.Equal(0, toks[0].StartColumn)
	// the newline byte closes the run and belongs to line 0
	assert.Equal(0, toks[0].EndLine)
	assert.Equal(2, toks[0].EndColumn)

	assert.Equal("cd", toks[1].Text)
	assert.Equal(3, toks[1].StartIndex)
	assert.Equal(1, toks[1].StartLine)
	assert.Equal(0, toks[1].StartColumn)
	assert.Equal(1, toks[1].EndLine)
	assert.Equal(1, toks[1].EndColumn)
}

func Test_tokenizeStyleRuns_styleChangeInsideCharacter(t *testing.T) {
	assert := assert.New(t)

	// "€" is 3 bytes; a style change after its first byte splits it into two
	// runs that are each invalid UTF-8
	buf := "€"
	styles := []byte{1, 2, 2}

	toks, err := runScan(t, buf, styles)
	assert.ErrorIs(err, ErrEncoding)
	assert.Empty(toks)
}

func Test_tokenizeStyleRuns_partitionAndRoundTrip(t *testing.T) {
	assert := assert.New(t)

	buf := []byte("func main() {\n\t// say héllo\n\tfmt.Println(\"héllo\")\n}\n")

	// deterministic styles that change at arbitrary-looking places but never
	// inside the multi-byte é runes (bytes 23-24 and 44-45)
	styles := make([]byte, len(buf))
	for i := range styles {
		styles[i] = byte((i / 7) % 5)
	}
	styles[24] = styles[23]
	styles[45] = styles[44]

	sink := &listSink{}
	err := tokenizeStyleRuns(buf, styles, bufacc.New(buf), sink)
	if !assert.NoError(err) {
		return
	}
	toks := sink.tokens

	// partition: tokens are ordered, contiguous, and cover [0, len(buf)-1]
	next := 0
	for i := range toks {
		assert.Equal(next, toks[i].StartIndex, "token %d", i)
		assert.LessOrEqual(toks[i].StartIndex, toks[i].EndIndex, "token %d", i)
		next = toks[i].EndIndex + 1
	}
	assert.Equal(len(buf), next)

	// style-run correctness: adjacent tokens always differ in style
	for i := 1; i < len(toks); i++ {
		assert.NotEqual(toks[i-1].Style, toks[i].Style, "tokens %d and %d", i-1, i)
	}

	// round-trip: concatenated token text reproduces the buffer
	var rebuilt []byte
	for i := range toks {
		rebuilt = append(rebuilt, []byte(toks[i].Text)...)
	}
	assert.Equal(buf, rebuilt)
}

func Test_tokenizeStyleRuns_callbackErrorAborts(t *testing.T) {
	assert := assert.New(t)

	buf := []byte("aabbcc")
	styles := []byte{1, 1, 2, 2, 3, 3}

	bang := errors.New("bang")
	var seen []Token

	err := tokenizeStyleRuns(buf, styles, bufacc.New(buf), funcSink{fn: func(tok Token) error {
		seen = append(seen, tok)
		if len(seen) == 2 {
			return bang
		}
		return nil
	}})

	assert.ErrorIs(err, bang)
	assert.Len(seen, 2)
}
