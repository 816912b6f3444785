// Package ictio adapts lexers built with the ictiobus parser generator so
// they can paint style buffers. An ictiobus lexer produces a stream of
// positioned tokens from a reader; the adapter replays that stream over the
// original byte buffer and colors each lexeme's bytes with the style mapped
// to its token class. Bytes no lexeme claims, such as the whitespace between
// tokens, are left at the default style.
//
// Ictiobus lexers do not use keyword word lists, and the adapter has no way
// to inspect what a given lexer might want, so engines from this package
// report that their word list requirements cannot be determined.
package ictio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/sterling/lexers"
)

// Lexer is the part of an ictiobus lexer the adapter needs. Any lexer
// returned by ictiobus code generation satisfies it, as does the Lexer field
// of an ictiobus.Frontend.
type Lexer interface {
	// Lex reads source text and returns a stream of the tokens lexed from
	// it.
	Lex(input io.Reader) (lex.TokenStream, error)
}

// Engine drives an ictiobus lexer over a buffer and paints the resulting
// token lexemes. It implements lexers.Engine.
type Engine struct {
	lexer  Lexer
	styles map[string]byte
}

// New creates an Engine around the given lexer. The styles map gives the
// style to paint for each token class ID; classes not in the map leave their
// lexemes at the default style.
func New(lexer Lexer, styles map[string]int) *Engine {
	eng := &Engine{
		lexer:  lexer,
		styles: make(map[string]byte, len(styles)),
	}
	for id, style := range styles {
		eng.styles[id] = byte(style)
	}
	return eng
}

// NumWordLists returns lexers.NumWordListsUnknown; ictiobus lexers carry
// their keywords in their patterns and take no word lists.
func (eng *Engine) NumWordLists() int {
	return lexers.NumWordListsUnknown
}

// WordListDescriptions returns nil.
func (eng *Engine) WordListDescriptions() []string {
	return nil
}

// Classify lexes buf and fills styles with one style byte per byte of buf.
// Word lists and properties are ignored.
func (eng *Engine) Classify(buf []byte, styles []byte, props lexers.Properties, wordLists []string) error {
	if len(buf) == 0 {
		return nil
	}

	stream, err := eng.lexer.Lex(bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("lexing buffer: %w", err)
	}

	// tokens arrive in source order, so each lexeme is located by searching
	// forward from the end of the previous one
	cursor := 0
	for stream.HasNext() {
		tok := stream.Next()

		lexeme := tok.Lexeme()
		if lexeme == "" {
			// the end-of-text marker and other synthetic tokens have no
			// lexeme and claim no bytes
			continue
		}

		rel := bytes.Index(buf[cursor:], []byte(lexeme))
		if rel < 0 {
			// the lexer normalized the lexeme away from the source bytes;
			// those bytes stay at the default style
			continue
		}
		start := cursor + rel

		if style, ok := eng.styles[tok.Class().ID()]; ok {
			for i := start; i < start+len(lexeme); i++ {
				styles[i] = style
			}
		}

		cursor = start + len(lexeme)
	}

	return nil
}
