// Package sitter provides style engines backed by tree-sitter grammars. A
// tree-sitter engine parses the buffer into a syntax tree, runs a capture
// query over it, and paints each captured node's byte span with the style
// mapped to its capture name. Bytes no capture claims are left at the
// default style.
//
// Tree-sitter grammars carry their keywords in the grammar itself, so these
// engines take no word lists.
package sitter

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/dekarrin/sterling/lexers"
)

// Engine styles buffers by querying a tree-sitter parse of them. It
// implements lexers.Engine.
//
// A tree-sitter parser is a stateful native object that cannot run two parses
// at once, so Classify serializes calls on the engine.
type Engine struct {
	mtx    sync.Mutex
	parser *sitter.Parser
	query  *sitter.Query
	styles map[string]byte
}

// New creates an Engine for the given grammar. The query must be a
// tree-sitter capture query in that grammar; styles maps each capture name
// to the style painted over its captured nodes. Capture names not in the map
// leave their nodes at the default style.
func New(lang *sitter.Language, query []byte, styles map[string]int) (*Engine, error) {
	q, err := sitter.NewQuery(query, lang)
	if err != nil {
		return nil, fmt.Errorf("compiling capture query: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	eng := &Engine{
		parser: parser,
		query:  q,
		styles: make(map[string]byte, len(styles)),
	}
	for name, style := range styles {
		eng.styles[name] = byte(style)
	}
	return eng, nil
}

// NumWordLists returns 0.
func (eng *Engine) NumWordLists() int {
	return 0
}

// WordListDescriptions returns an empty slice.
func (eng *Engine) WordListDescriptions() []string {
	return []string{}
}

// Classify parses buf and fills styles with one style byte per byte of buf.
// Word lists and properties are ignored.
func (eng *Engine) Classify(buf []byte, styles []byte, props lexers.Properties, wordLists []string) error {
	if len(buf) == 0 {
		return nil
	}

	eng.mtx.Lock()
	defer eng.mtx.Unlock()

	tree, err := eng.parser.ParseCtx(context.Background(), nil, buf)
	if err != nil {
		return fmt.Errorf("parsing buffer: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(eng.query, tree.RootNode())

	for {
		qm, ok := qc.NextMatch()
		if !ok {
			break
		}

		for _, capture := range qm.Captures {
			name := eng.query.CaptureNameForId(capture.Index)
			style, mapped := eng.styles[name]
			if !mapped {
				continue
			}

			start := int(capture.Node.StartByte())
			end := int(capture.Node.EndByte())
			if end > len(buf) {
				end = len(buf)
			}
			for i := start; i < end; i++ {
				styles[i] = style
			}
		}
	}

	return nil
}

// goHighlightQuery captures the node types a style-per-byte view of Go cares
// about. It is a small subset of the full upstream highlight query.
const goHighlightQuery = `
(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(int_literal) @number
(float_literal) @number
(imaginary_literal) @number
[
	"break" "case" "chan" "const" "continue" "default" "defer" "else"
	"fallthrough" "for" "func" "go" "goto" "if" "import" "interface" "map"
	"package" "range" "return" "select" "struct" "switch" "type" "var"
] @keyword
`

// NewGo creates an Engine for the Go grammar with the standard style
// palette.
func NewGo() (*Engine, error) {
	return New(golang.GetLanguage(), []byte(goHighlightQuery), map[string]int{
		"comment": lexers.StyleComment,
		"string":  lexers.StyleString,
		"number":  lexers.StyleNumber,
		"keyword": lexers.StyleKeyword,
	})
}

func init() {
	eng, err := NewGo()
	if err != nil {
		panic(fmt.Sprintf("building go tree-sitter engine: %v", err))
	}
	lexers.MustRegister("go", eng)
}
