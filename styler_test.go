package sterling

import (
	"sync"
	"testing"

	"github.com/dekarrin/sterling/lexers"
	"github.com/stretchr/testify/assert"
)

// coyEngine reports no word-list information at all.
type coyEngine struct{}

func (coyEngine) NumWordLists() int {
	return lexers.NumWordListsUnknown
}

func (coyEngine) WordListDescriptions() []string {
	return nil
}

func (coyEngine) Classify(buf []byte, styles []byte, props lexers.Properties, wordLists []string) error {
	return nil
}

var registerCoyOnce sync.Once

func registerCoy(t *testing.T) {
	t.Helper()
	registerCoyOnce.Do(func() {
		lexers.MustRegister("coy-test", coyEngine{})
	})
}

func Test_NewStyler(t *testing.T) {
	assert := assert.New(t)

	st, err := NewStyler("null")
	if !assert.NoError(err) {
		return
	}
	assert.Equal("null", st.Language())

	_, err = NewStyler("no-such-language")
	assert.ErrorIs(err, ErrNoLanguage)
}

func Test_Styler_NumWordLists(t *testing.T) {
	assert := assert.New(t)
	registerCoy(t)

	st, err := NewStyler("null")
	if !assert.NoError(err) {
		return
	}
	n, err := st.NumWordLists()
	assert.NoError(err)
	assert.Equal(0, n)

	st, err = NewStyler("cstyle")
	if !assert.NoError(err) {
		return
	}
	n, err = st.NumWordLists()
	assert.NoError(err)
	assert.Equal(2, n)

	st, err = NewStyler("coy-test")
	if !assert.NoError(err) {
		return
	}
	_, err = st.NumWordLists()
	assert.ErrorIs(err, ErrWordListsUnknown)
}

func Test_Styler_WordListDescriptions(t *testing.T) {
	assert := assert.New(t)
	registerCoy(t)

	st, err := NewStyler("cstyle")
	if !assert.NoError(err) {
		return
	}

	descs, err := st.WordListDescriptions()
	assert.NoError(err)
	assert.Len(descs, 2)

	desc, err := st.WordListDescription(0)
	assert.NoError(err)
	assert.Equal(descs[0], desc)

	_, err = st.WordListDescription(2)
	assert.ErrorIs(err, ErrBadArgument)
	_, err = st.WordListDescription(-1)
	assert.ErrorIs(err, ErrBadArgument)

	st, err = NewStyler("coy-test")
	if !assert.NoError(err) {
		return
	}
	_, err = st.WordListDescriptions()
	assert.ErrorIs(err, ErrWordListsUnknown)
}

func Test_Styler_TokenizeByStyle_nullLanguage(t *testing.T) {
	assert := assert.New(t)

	st, err := NewStyler("null")
	if !assert.NoError(err) {
		return
	}

	toks, err := st.TokenizeByStyle([]byte("import string"), "utf-8", nil, nil, nil)
	if !assert.NoError(err) {
		return
	}

	// one style everywhere means exactly one token
	if !assert.Len(toks, 1) {
		return
	}
	assert.Equal(0, toks[0].Style)
	assert.Equal("import string", toks[0].Text)
	assert.Equal(0, toks[0].StartIndex)
	assert.Equal(12, toks[0].EndIndex)
}

func Test_Styler_TokenizeByStyle_emptyBuffer(t *testing.T) {
	assert := assert.New(t)

	st, err := NewStyler("cstyle")
	if !assert.NoError(err) {
		return
	}

	toks, err := st.TokenizeByStyle(nil, "", nil, nil, nil)
	assert.NoError(err)
	assert.Empty(toks)

	calls := 0
	toks, err = st.TokenizeByStyle(nil, "", nil, nil, func(tok Token) error {
		calls++
		return nil
	})
	assert.NoError(err)
	assert.Nil(toks)
	assert.Zero(calls)
}

func Test_Styler_TokenizeByStyle_modeEquivalence(t *testing.T) {
	assert := assert.New(t)

	st, err := NewStyler("cstyle")
	if !assert.NoError(err) {
		return
	}

	src := []byte("int x = 0; // the count\nreturn x;\n")
	words := WordListsOf("int return", "size_t")
	props, err := NewPropertySet(map[string]string{"lexer.cstyle.caseless": "0"})
	if !assert.NoError(err) {
		return
	}

	collected, err := st.TokenizeByStyle(src, "utf-8", words, props, nil)
	if !assert.NoError(err) {
		return
	}
	assert.NotEmpty(collected)

	var streamed []Token
	ret, err := st.TokenizeByStyle(src, "utf-8", words, props, func(tok Token) error {
		streamed = append(streamed, tok)
		return nil
	})
	if !assert.NoError(err) {
		return
	}

	assert.Nil(ret)
	assert.Equal(collected, streamed)
}

func Test_Styler_TokenizeByStyle_encodingHint(t *testing.T) {
	assert := assert.New(t)

	st, err := NewStyler("null")
	if !assert.NoError(err) {
		return
	}

	// latin1 "café"
	toks, err := st.TokenizeByStyle([]byte{'c', 'a', 'f', 0xe9}, "latin1", nil, nil, nil)
	if !assert.NoError(err) {
		return
	}
	if !assert.Len(toks, 1) {
		return
	}
	assert.Equal("café", toks[0].Text)
	// positions are offsets into the decoded UTF-8 buffer, so é is 2 bytes
	assert.Equal(4, toks[0].EndIndex)

	_, err = st.TokenizeByStyle([]byte("x"), "not-a-charset", nil, nil, nil)
	assert.ErrorIs(err, ErrEncoding)
}

func Test_Styler_TokenizeByStyle_badWordList(t *testing.T) {
	assert := assert.New(t)

	st, err := NewStyler("cstyle")
	if !assert.NoError(err) {
		return
	}

	_, err = st.TokenizeByStyle([]byte("int x"), "", []WordList{NewWordList("\xff")}, nil, nil)
	assert.ErrorIs(err, ErrBadArgument)
}

func Test_Styler_TokenizeByStyle_invalidUTF8Buffer(t *testing.T) {
	assert := assert.New(t)

	st, err := NewStyler("null")
	if !assert.NoError(err) {
		return
	}

	toks, err := st.TokenizeByStyle([]byte{0xff, 0xfe}, "utf-8", nil, nil, nil)
	assert.ErrorIs(err, ErrEncoding)
	assert.Nil(toks)
}
