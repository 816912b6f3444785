package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		input  []string
		expect string
	}{
		{input: nil, expect: ""},
		{input: []string{"a"}, expect: "a"},
		{input: []string{"a", "b"}, expect: "a and b"},
		{input: []string{"a", "b", "c"}, expect: "a, b, and c"},
		{input: []string{"w", "x", "y", "z"}, expect: "w, x, y, and z"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d items", len(tc.input)), func(t *testing.T) {
			assert := assert.New(t)

			actual := MakeTextList(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_OrderedKeys(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"zebra": 1, "apple": 2, "mango": 3}

	actual := OrderedKeys(m)

	assert.Equal([]string{"apple", "mango", "zebra"}, actual)
}

func Test_OrderedKeys_empty(t *testing.T) {
	assert := assert.New(t)

	actual := OrderedKeys(map[string]bool{})

	assert.Empty(actual)
}
