package enc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Decode(t *testing.T) {
	testCases := []struct {
		name      string
		data      []byte
		hint      string
		expect    string
		expectErr bool
	}{
		{
			name:   "empty hint passes through",
			data:   []byte("hello"),
			hint:   "",
			expect: "hello",
		},
		{
			name:   "utf-8 hint passes through",
			data:   []byte("héllo"),
			hint:   "utf-8",
			expect: "héllo",
		},
		{
			name:   "latin1 e-acute",
			data:   []byte{'c', 'a', 'f', 0xe9},
			hint:   "latin1",
			expect: "café",
		},
		{
			name:   "iso-8859-1 alias",
			data:   []byte{0xe9},
			hint:   "ISO-8859-1",
			expect: "é",
		},
		{
			name:   "windows-1252 curly quote",
			data:   []byte{0x93},
			hint:   "windows-1252",
			expect: "“",
		},
		{
			name:      "unknown hint",
			data:      []byte("x"),
			hint:      "not-a-charset",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Decode(tc.data, tc.hint)
			if tc.expectErr {
				assert.ErrorIs(err, ErrUnknownEncoding)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, string(actual))
		})
	}
}

func Test_IsUTF8Hint(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsUTF8Hint(""))
	assert.True(IsUTF8Hint("utf-8"))
	assert.True(IsUTF8Hint("UTF8"))
	assert.False(IsUTF8Hint("latin1"))
}
