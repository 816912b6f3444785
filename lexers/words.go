package lexers

import "strings"

// WordsEngine is a language-agnostic engine that splits a buffer into runs of
// word characters, whitespace, and everything else. Word runs found in word
// list slot 0 are styled StyleKeyword; other word runs are styled
// StyleIdentifier. Whitespace is styled StyleWhitespace and any remaining
// byte StyleOperator.
//
// It is registered as language "words" and is useful as a cheap fallback when
// no real language definition exists for the text.
type WordsEngine struct{}

func (WordsEngine) NumWordLists() int {
	return 1
}

func (WordsEngine) WordListDescriptions() []string {
	return []string{"Keywords"}
}

func (WordsEngine) Classify(buf []byte, styles []byte, props Properties, wordLists []string) error {
	keywords := map[string]bool{}
	if len(wordLists) > 0 {
		for _, w := range strings.Fields(wordLists[0]) {
			keywords[w] = true
		}
	}

	paintWord := func(start, end int) {
		style := byte(StyleIdentifier)
		if keywords[string(buf[start:end])] {
			style = byte(StyleKeyword)
		}
		for i := start; i < end; i++ {
			styles[i] = style
		}
	}

	wordStart := -1
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if isWordByte(c) {
			if wordStart == -1 {
				wordStart = i
			}
			continue
		}

		if wordStart != -1 {
			paintWord(wordStart, i)
			wordStart = -1
		}

		if isSpaceByte(c) {
			styles[i] = StyleWhitespace
		} else {
			styles[i] = StyleOperator
		}
	}
	if wordStart != -1 {
		paintWord(wordStart, len(buf))
	}

	return nil
}

func isWordByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c >= 0x80
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func init() {
	MustRegister("words", WordsEngine{})
}
