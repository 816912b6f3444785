package lexers

// NullEngine is the engine for the "null" language: every byte is classified
// with the default style and no word lists are wanted. It exists so callers
// can run the full tokenization path over text with no known language and get
// back one all-of-buffer token per style run (which is to say, one token).
type NullEngine struct{}

func (NullEngine) NumWordLists() int {
	return 0
}

func (NullEngine) WordListDescriptions() []string {
	return nil
}

// Classify leaves every style byte at the default style. The styles slice is
// zeroed by the caller before classification, so there is nothing to write.
func (NullEngine) Classify(buf []byte, styles []byte, props Properties, wordLists []string) error {
	return nil
}

func init() {
	MustRegister("null", NullEngine{})
}
