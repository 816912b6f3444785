package bufacc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LineAt(t *testing.T) {
	testCases := []struct {
		name   string
		buf    string
		pos    int
		expect int
	}{
		{
			name:   "single line, first byte",
			buf:    "hello",
			pos:    0,
			expect: 0,
		},
		{
			name:   "single line, last byte",
			buf:    "hello",
			pos:    4,
			expect: 0,
		},
		{
			name:   "newline byte belongs to the line it ends",
			buf:    "ab\ncd",
			pos:    2,
			expect: 0,
		},
		{
			name:   "first byte after newline",
			buf:    "ab\ncd",
			pos:    3,
			expect: 1,
		},
		{
			name:   "third line",
			buf:    "a\nb\nc",
			pos:    4,
			expect: 2,
		},
		{
			name:   "position past end reports final line",
			buf:    "a\nb",
			pos:    80,
			expect: 1,
		},
		{
			name:   "line after trailing newline",
			buf:    "a\n",
			pos:    2,
			expect: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			acc := New([]byte(tc.buf))

			assert.Equal(tc.expect, acc.LineAt(tc.pos))
		})
	}
}

func Test_ColumnAt(t *testing.T) {
	testCases := []struct {
		name   string
		buf    string
		pos    int
		expect int
	}{
		{
			name:   "start of buffer",
			buf:    "hello",
			pos:    0,
			expect: 0,
		},
		{
			name:   "within first line",
			buf:    "hello",
			pos:    3,
			expect: 3,
		},
		{
			name:   "start of second line",
			buf:    "ab\ncd",
			pos:    3,
			expect: 0,
		},
		{
			name:   "within second line",
			buf:    "ab\ncd",
			pos:    4,
			expect: 1,
		},
		{
			name: "columns count bytes, not runes",

			// 'é' is 2 bytes in UTF-8, so the 'x' after it is at column 3.
			buf:    "aéx",
			pos:    3,
			expect: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			acc := New([]byte(tc.buf))

			assert.Equal(tc.expect, acc.ColumnAt(tc.pos))
		})
	}
}

func Test_Lines(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, New(nil).Lines())
	assert.Equal(1, New([]byte("abc")).Lines())
	assert.Equal(2, New([]byte("abc\n")).Lines())
	assert.Equal(3, New([]byte("a\nb\nc")).Lines())
}
