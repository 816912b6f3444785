package sitter

import (
	"sync"
	"testing"

	"github.com/dekarrin/sterling/lexers"
	"github.com/stretchr/testify/assert"
)

func Test_Engine_wordLists(t *testing.T) {
	assert := assert.New(t)

	eng, err := NewGo()
	if !assert.NoError(err) {
		return
	}

	assert.Equal(0, eng.NumWordLists())
	assert.Empty(eng.WordListDescriptions())
}

func Test_Engine_Classify_comment(t *testing.T) {
	assert := assert.New(t)

	eng, err := NewGo()
	if !assert.NoError(err) {
		return
	}

	src := []byte("// hi\n")
	styles := make([]byte, len(src))
	err = eng.Classify(src, styles, nil, nil)
	if !assert.NoError(err) {
		return
	}

	for i := 0; i < 5; i++ {
		assert.Equal(byte(lexers.StyleComment), styles[i], "byte %d", i)
	}
	assert.Equal(byte(lexers.StyleDefault), styles[5])
}

func Test_Engine_Classify_keywordAndString(t *testing.T) {
	assert := assert.New(t)

	eng, err := NewGo()
	if !assert.NoError(err) {
		return
	}

	//            0123456789012345678901234567
	src := []byte("package x\nvar s = \"hi\"\n")
	styles := make([]byte, len(src))
	err = eng.Classify(src, styles, nil, nil)
	if !assert.NoError(err) {
		return
	}

	// "package" at 0-6
	for i := 0; i <= 6; i++ {
		assert.Equal(byte(lexers.StyleKeyword), styles[i], "byte %d", i)
	}
	// "x" at 8 is not captured
	assert.Equal(byte(lexers.StyleDefault), styles[8])
	// "var" at 10-12
	for i := 10; i <= 12; i++ {
		assert.Equal(byte(lexers.StyleKeyword), styles[i], "byte %d", i)
	}
	// "\"hi\"" at 18-21
	for i := 18; i <= 21; i++ {
		assert.Equal(byte(lexers.StyleString), styles[i], "byte %d", i)
	}
}

func Test_Engine_Classify_empty(t *testing.T) {
	assert := assert.New(t)

	eng, err := NewGo()
	if !assert.NoError(err) {
		return
	}

	assert.NoError(eng.Classify(nil, nil, nil, nil))
}

func Test_registered(t *testing.T) {
	assert := assert.New(t)

	eng, err := lexers.Lookup("go")
	assert.NoError(err)
	assert.NotNil(eng)
}

func Test_Engine_concurrentClassify(t *testing.T) {
	assert := assert.New(t)

	// the registered engine is shared by every classification of "go"; the
	// native parser serializes internally, and each call's output must match
	// sequential classification of the same source
	eng, err := lexers.Lookup("go")
	if !assert.NoError(err) {
		return
	}

	src := []byte("package x\nvar s = \"hi\"\n")
	want := make([]byte, len(src)+1)
	if !assert.NoError(eng.Classify(src, want, nil, nil)) {
		return
	}

	const workers = 8
	results := make([][]byte, workers)

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()

			styles := make([]byte, len(src)+1)
			for rep := 0; rep < 10; rep++ {
				if err := eng.Classify(src, styles, nil, nil); err != nil {
					return
				}
			}
			results[g] = styles
		}()
	}
	wg.Wait()

	for g := 0; g < workers; g++ {
		assert.Equal(want, results[g], "goroutine %d", g)
	}
}
