package sterling

import (
	"fmt"
	"unicode/utf8"
)

// WordList is a set of language-specific keywords fed to a lexer engine to
// influence style assignment, held as a single whitespace-delimited string.
// The zero value is a word list with no keywords, which is a valid thing to
// give an engine for any slot the caller has no keywords for.
//
// A language declares how many word list slots it wants and what each slot is
// for; see [Styler.NumWordLists] and [Styler.WordListDescriptions].
type WordList struct {
	words string
}

// NewWordList creates a WordList holding the given whitespace-delimited
// keywords.
func NewWordList(words string) WordList {
	return WordList{words: words}
}

// String returns the raw whitespace-delimited keyword text of the list. For
// an empty word list this is the empty string.
func (wl WordList) String() string {
	return wl.words
}

// WordListsOf is a convenience function that wraps each given string in a
// WordList, in order.
func WordListsOf(raws ...string) []WordList {
	wls := make([]WordList, len(raws))
	for i := range raws {
		wls[i] = NewWordList(raws[i])
	}
	return wls
}

// flattenWordLists converts caller-supplied word lists to the flat string
// slice an engine is handed, one string per slot. A word list with no
// keywords becomes the empty string at its slot, never an omission, so the
// output length always equals the input length. The slot count is whatever
// the caller supplied; it is deliberately not checked against the language's
// declared requirement.
//
// Each element's text must be valid UTF-8. If any element is malformed the
// returned error names its position, matches [ErrBadArgument] via errors.Is,
// and no strings are returned with it.
func flattenWordLists(wordLists []WordList) ([]string, error) {
	flat := make([]string, len(wordLists))

	for i := range wordLists {
		raw := wordLists[i].String()
		if !utf8.ValidString(raw) {
			return nil, fmt.Errorf("word list %d: keyword text is not valid UTF-8: %w", i, ErrBadArgument)
		}
		flat[i] = raw
	}

	return flat, nil
}
