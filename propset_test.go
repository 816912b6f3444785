package sterling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PropertySet_GetSet(t *testing.T) {
	assert := assert.New(t)

	ps := &PropertySet{}

	assert.Equal("", ps.Get("never.set"))

	ps.Set("fold", "1")
	assert.Equal("1", ps.Get("fold"))

	ps.Set("fold", "0")
	assert.Equal("0", ps.Get("fold"))

	// clearing to empty keeps the key enumerable
	ps.Set("fold", "")
	assert.Equal("", ps.Get("fold"))
	assert.Equal([]string{"fold"}, ps.Keys())
}

func Test_PropertySet_ordering(t *testing.T) {
	assert := assert.New(t)

	ps := &PropertySet{}
	ps.Set("c", "3")
	ps.Set("a", "1")
	ps.Set("b", "2")

	assert.Equal([]string{"c", "a", "b"}, ps.Keys())
	assert.Equal([]string{"3", "1", "2"}, ps.Values())

	// re-setting an existing key must not move it
	ps.Set("a", "one")
	assert.Equal([]string{"c", "a", "b"}, ps.Keys())
	assert.Equal([]string{"3", "one", "2"}, ps.Values())
}

func Test_PropertySet_snapshots(t *testing.T) {
	assert := assert.New(t)

	ps := &PropertySet{}
	ps.Set("x", "1")

	keys := ps.Keys()
	vals := ps.Values()

	ps.Set("y", "2")
	ps.Set("x", "changed")

	assert.Equal([]string{"x"}, keys)
	assert.Equal([]string{"1"}, vals)
}

func Test_PropertySet_SetAll(t *testing.T) {
	testCases := []struct {
		name       string
		source     interface{}
		expectKeys []string
		expectVals []string
		expectErr  bool
	}{
		{
			name:       "string map applies in sorted key order",
			source:     map[string]string{"b": "2", "a": "1"},
			expectKeys: []string{"a", "b"},
			expectVals: []string{"1", "2"},
		},
		{
			name:       "interface map with convertible values",
			source:     map[string]interface{}{"n": 3, "f": 1.5, "t": true},
			expectKeys: []string{"f", "n", "t"},
			expectVals: []string{"1.5", "3", "1"},
		},
		{
			name:       "pair slice keeps given order",
			source:     [][2]string{{"z", "26"}, {"a", "1"}},
			expectKeys: []string{"z", "a"},
			expectVals: []string{"26", "1"},
		},
		{
			name:       "decoded JSON pair entries",
			source:     []interface{}{[]interface{}{"k", "v"}},
			expectKeys: []string{"k"},
			expectVals: []string{"v"},
		},
		{
			name:      "not a mapping at all",
			source:    42,
			expectErr: true,
		},
		{
			name:      "pair entry with wrong length",
			source:    []interface{}{[]interface{}{"k", "v", "extra"}},
			expectErr: true,
		},
		{
			name:      "pair entry not a pair",
			source:    []interface{}{"just a string"},
			expectErr: true,
		},
		{
			name:      "unconvertible value",
			source:    map[string]interface{}{"k": struct{}{}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			ps := &PropertySet{}
			err := ps.SetAll(tc.source)

			if tc.expectErr {
				assert.ErrorIs(err, ErrBadArgument)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expectKeys, ps.Keys())
			assert.Equal(tc.expectVals, ps.Values())
		})
	}
}

func Test_PropertySet_SetAll_noPartialMutation(t *testing.T) {
	assert := assert.New(t)

	ps := &PropertySet{}
	ps.Set("pre", "1")

	// second entry is bad; the first must not be applied either
	err := ps.SetAll([]interface{}{
		[]interface{}{"good", "v"},
		[]interface{}{"bad", struct{}{}},
	})

	assert.ErrorIs(err, ErrBadArgument)
	assert.Equal([]string{"pre"}, ps.Keys())
	assert.Equal("", ps.Get("good"))
}

func Test_NewPropertySet(t *testing.T) {
	assert := assert.New(t)

	ps, err := NewPropertySet(map[string]string{"a": "1"}, [][2]string{{"b", "2"}})
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]string{"a", "b"}, ps.Keys())

	_, err = NewPropertySet("not a mapping")
	assert.ErrorIs(err, ErrBadArgument)
}
