package sterling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_flattenWordLists(t *testing.T) {
	testCases := []struct {
		name      string
		input     []WordList
		expect    []string
		expectErr bool
	}{
		{
			name:   "empty input",
			input:  []WordList{},
			expect: []string{},
		},
		{
			name:   "single list",
			input:  WordListsOf("if else for"),
			expect: []string{"if else for"},
		},
		{
			name:   "empty slot becomes empty string, not omission",
			input:  []WordList{NewWordList("a b"), {}, NewWordList("c")},
			expect: []string{"a b", "", "c"},
		},
		{
			name:      "invalid UTF-8 in a slot",
			input:     []WordList{NewWordList("ok"), NewWordList("bad\xff\xfe")},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := flattenWordLists(tc.input)
			if tc.expectErr {
				assert.ErrorIs(err, ErrBadArgument)
				assert.Nil(actual)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
			assert.Len(actual, len(tc.input))
		})
	}
}

func Test_flattenWordLists_errorNamesPosition(t *testing.T) {
	assert := assert.New(t)

	_, err := flattenWordLists([]WordList{NewWordList("fine"), NewWordList("\xff")})
	if !assert.Error(err) {
		return
	}
	assert.Contains(err.Error(), "word list 1")
}

func Test_WordList_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", WordList{}.String())
	assert.Equal("a b c", NewWordList("a b c").String())
}
