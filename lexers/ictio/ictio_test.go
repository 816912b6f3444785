package ictio

import (
	"io"
	"testing"

	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/sterling/lexers"
	"github.com/stretchr/testify/assert"
)

type fakeClass string

func (c fakeClass) ID() string    { return string(c) }
func (c fakeClass) Human() string { return string(c) }
func (c fakeClass) Equal(o any) bool {
	other, ok := o.(lex.TokenClass)
	return ok && other.ID() == c.ID()
}

type fakeToken struct {
	class  fakeClass
	lexeme string
}

func (t fakeToken) Class() lex.TokenClass { return t.class }
func (t fakeToken) Lexeme() string        { return t.lexeme }
func (t fakeToken) Line() int             { return 1 }
func (t fakeToken) LinePos() int          { return 1 }
func (t fakeToken) FullLine() string      { return "" }
func (t fakeToken) String() string        { return t.lexeme }

type fakeStream struct {
	toks []fakeToken
	cur  int
}

func (s *fakeStream) Next() lex.Token {
	t := s.toks[s.cur]
	s.cur++
	return t
}

func (s *fakeStream) Peek() lex.Token { return s.toks[s.cur] }
func (s *fakeStream) HasNext() bool   { return s.cur < len(s.toks) }

type fakeLexer struct {
	toks []fakeToken
}

func (lx fakeLexer) Lex(input io.Reader) (lex.TokenStream, error) {
	return &fakeStream{toks: lx.toks}, nil
}

func Test_Engine_wordListsUnknown(t *testing.T) {
	assert := assert.New(t)

	eng := New(fakeLexer{}, nil)

	assert.Equal(lexers.NumWordListsUnknown, eng.NumWordLists())
	assert.Nil(eng.WordListDescriptions())
}

func Test_Engine_Classify(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		toks   []fakeToken
		styles map[string]int
		expect []byte
	}{
		{
			name:  "lexemes with gap between them",
			input: "if x",
			toks: []fakeToken{
				{class: "kw", lexeme: "if"},
				{class: "id", lexeme: "x"},
			},
			styles: map[string]int{"kw": 6, "id": 5},
			expect: []byte{6, 6, 0, 5},
		},
		{
			name:  "unmapped class stays default",
			input: "if x",
			toks: []fakeToken{
				{class: "kw", lexeme: "if"},
				{class: "id", lexeme: "x"},
			},
			styles: map[string]int{"kw": 6},
			expect: []byte{6, 6, 0, 0},
		},
		{
			name:  "empty lexeme claims nothing",
			input: "ab",
			toks: []fakeToken{
				{class: "id", lexeme: "ab"},
				{class: "$", lexeme: ""},
			},
			styles: map[string]int{"id": 5},
			expect: []byte{5, 5},
		},
		{
			name:  "repeated lexeme matches in order",
			input: "x+x",
			toks: []fakeToken{
				{class: "id", lexeme: "x"},
				{class: "op", lexeme: "+"},
				{class: "id", lexeme: "x"},
			},
			styles: map[string]int{"id": 5, "op": 4},
			expect: []byte{5, 4, 5},
		},
		{
			name:  "normalized lexeme skipped",
			input: "ab",
			toks: []fakeToken{
				{class: "id", lexeme: "AB"},
			},
			styles: map[string]int{"id": 5},
			expect: []byte{0, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			eng := New(fakeLexer{toks: tc.toks}, tc.styles)

			styles := make([]byte, len(tc.input))
			err := eng.Classify([]byte(tc.input), styles, nil, nil)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, styles)
		})
	}
}
