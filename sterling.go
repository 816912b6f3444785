// Package sterling classifies source text into style-tagged tokens. A lexer
// engine assigns every byte of a buffer a lexical style (keyword, comment,
// string literal, and so on); sterling segments those per-byte styles into
// maximal same-style runs and emits one token per run with its decoded text
// and byte/line/column positions, either as a materialized slice or pushed
// through a callback.
//
// The engines themselves live in the lexers package and its subpackages;
// sterling looks them up by language name in the lexers registry. A minimal
// use looks like:
//
//	styler, err := sterling.NewStyler("cstyle")
//	if err != nil {
//		return err
//	}
//	keywords := sterling.WordListsOf("if else for while return int")
//	toks, err := styler.TokenizeByStyle(src, "utf-8", keywords, nil, nil)
package sterling

import (
	"fmt"

	"github.com/dekarrin/sterling/internal/bufacc"
	"github.com/dekarrin/sterling/internal/enc"
	"github.com/dekarrin/sterling/lexers"
)

// Styler is a classification session for one language. It wraps the
// language's engine and exposes the word-list queries and the tokenization
// call.
//
// A Styler must not be used by two classification calls at once; the
// underlying engine is not reentrant. Sequential reuse for any number of
// buffers is fine.
type Styler struct {
	language string
	eng      lexers.Engine
}

// NewStyler creates a Styler for the given language name. The language must
// have an engine in the lexers registry; if it does not, the returned error
// matches ErrNoLanguage.
func NewStyler(language string) (*Styler, error) {
	eng, err := lexers.Lookup(language)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", language, ErrNoLanguage)
	}

	return &Styler{language: language, eng: eng}, nil
}

// Language returns the language name the Styler was created for.
func (st *Styler) Language() string {
	return st.language
}

// NumWordLists returns how many word lists the language recommends supplying
// to TokenizeByStyle. If the engine cannot report a count, the returned error
// matches ErrWordListsUnknown.
//
// The count is advisory: TokenizeByStyle accepts however many word lists the
// caller passes.
func (st *Styler) NumWordLists() (int, error) {
	n := st.eng.NumWordLists()
	if n == lexers.NumWordListsUnknown {
		return 0, fmt.Errorf("%q: %w", st.language, ErrWordListsUnknown)
	}
	return n, nil
}

// WordListDescriptions returns a human-readable description of what each word
// list slot is for, in slot order. Its length equals the count reported by
// NumWordLists. If the engine cannot report its word list requirements, the
// returned error matches ErrWordListsUnknown.
func (st *Styler) WordListDescriptions() ([]string, error) {
	if st.eng.NumWordLists() == lexers.NumWordListsUnknown {
		return nil, fmt.Errorf("%q: %w", st.language, ErrWordListsUnknown)
	}
	return st.eng.WordListDescriptions(), nil
}

// WordListDescription returns the description of the single word list slot
// at the given index. The index must be in [0, NumWordLists); otherwise an
// error matching ErrBadArgument is returned.
func (st *Styler) WordListDescription(index int) (string, error) {
	descs, err := st.WordListDescriptions()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(descs) {
		return "", fmt.Errorf("word list index %d out of range [0, %d): %w", index, len(descs), ErrBadArgument)
	}
	return descs[index], nil
}

// TokenizeByStyle classifies text and returns its tokens.
//
// The text is decoded to UTF-8 per the encoding hint ("" means UTF-8
// already), the word lists are flattened and installed along with the
// property set, and the engine then assigns a style to every byte. The
// resulting style runs become tokens; see [Token] for the position
// conventions. A nil props is treated as an empty property set. An empty
// buffer yields zero tokens and no error.
//
// If fn is nil, the tokens are collected and returned as a slice. If fn is
// non-nil, each token is instead handed to fn as it is produced, the returned
// slice is nil, and an error returned by fn aborts the remaining scan and is
// propagated. Delivery order is strictly increasing StartIndex in both modes,
// and both modes produce field-for-field identical tokens for identical
// input.
//
// The call is synchronous: it returns only once every token is delivered or
// an error occurs. The engine runs no callbacks of its own and performs no
// I/O, so callers that want other work to proceed meanwhile are free to run
// the whole call on a separate goroutine. Errors: malformed word lists or
// properties match ErrBadArgument and are returned before the engine runs;
// an unusable encoding hint or a style run that is not valid UTF-8 matches
// ErrEncoding. On any error the returned token slice is nil; partial results
// are never returned.
func (st *Styler) TokenizeByStyle(text []byte, encoding string, wordLists []WordList, props *PropertySet, fn TokenFunc) ([]Token, error) {
	flat, err := flattenWordLists(wordLists)
	if err != nil {
		return nil, err
	}

	buf, err := enc.Decode(text, encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrEncoding)
	}

	if props == nil {
		props = &PropertySet{}
	}

	if len(buf) == 0 {
		if fn == nil {
			return []Token{}, nil
		}
		return nil, nil
	}

	// one byte of slack beyond the buffer end; some engines touch one style
	// byte past the last input byte while scanning, and it must never reach
	// callers
	styles := make([]byte, len(buf)+1)

	if err := st.eng.Classify(buf, styles, props, flat); err != nil {
		return nil, fmt.Errorf("classifying %q buffer: %w", st.language, err)
	}

	acc := bufacc.New(buf)

	if fn == nil {
		sink := &listSink{}
		if err := tokenizeStyleRuns(buf, styles[:len(buf)], acc, sink); err != nil {
			return nil, err
		}
		return sink.tokens, nil
	}

	if err := tokenizeStyleRuns(buf, styles[:len(buf)], acc, funcSink{fn: fn}); err != nil {
		return nil, err
	}
	return nil, nil
}
