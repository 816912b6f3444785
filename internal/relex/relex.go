// Package relex implements a small regex-driven style painter that the
// pattern-based built-in languages are defined with. A lexer is a set of
// states, each holding an ordered list of patterns paired with actions; the
// painter walks a buffer byte-by-byte, matching patterns against the unread
// remainder and painting the matched span's style bytes.
//
// Unlike a token-class lexer there is no notion of a failed lex: bytes that
// no pattern claims are painted with the default style one at a time, so
// painting always terminates after covering the whole buffer.
package relex

import (
	"fmt"
	"regexp"
)

type ActionType int

const (
	ActionNone ActionType = iota
	ActionPaint
	ActionState
	ActionPaintAndState
)

// Action is what a lexer does with the span a pattern matched: paint it with
// a style, shift to another state, or both. An ActionNone action paints the
// span with the lexer's default style, which is how spans like whitespace get
// claimed without being given a style of their own.
type Action struct {
	Type  ActionType
	Style int
	State string

	// Resolve, if set on a paint action, is consulted with the matched text
	// and the context given to Paint, and its return value replaces Style.
	// This is how word-list keyword membership gets decided at match time.
	Resolve func(lexeme string, ctx interface{}) int
}

// Paint returns an action that paints the matched span with the given style.
func Paint(style int) Action {
	return Action{
		Type:  ActionPaint,
		Style: style,
	}
}

// PaintWith returns an action that paints the matched span with whatever
// style the given function returns for the matched text. The function also
// receives the context value the Paint call was given.
func PaintWith(resolve func(lexeme string, ctx interface{}) int) Action {
	return Action{
		Type:    ActionPaint,
		Resolve: resolve,
	}
}

// SwapState returns an action that paints the matched span with the default
// style and shifts the lexer to the given state.
func SwapState(toState string) Action {
	return Action{
		Type:  ActionState,
		State: toState,
	}
}

// PaintAndSwapState returns an action that paints the matched span with the
// given style and then shifts the lexer to the given state.
func PaintAndSwapState(style int, newState string) Action {
	return Action{
		Type:  ActionPaintAndState,
		Style: style,
		State: newState,
	}
}

// Discard returns an action that paints the matched span with the default
// style.
func Discard() Action {
	return Action{}
}

type patAct struct {
	src string
	pat *regexp.Regexp
	act Action
}

// Lexer is a buildable style painter. Add patterns with AddPattern, then call
// Paint any number of times; a Lexer holds no per-call state and sequential
// calls are independent.
type Lexer struct {
	patterns     map[string][]patAct
	startState   string
	defaultStyle int
}

// NewLexer creates a Lexer that paints unclaimed bytes with the given default
// style. The starting state is the empty-named state unless
// SetStartingState is called.
func NewLexer(defaultStyle int) *Lexer {
	return &Lexer{
		patterns:     map[string][]patAct{},
		defaultStyle: defaultStyle,
	}
}

func (lx *Lexer) SetStartingState(s string) {
	lx.startState = s
}

func (lx *Lexer) StartingState() string {
	return lx.startState
}

// AddPattern adds the given pattern and its action to the given state. The
// pattern is implicitly anchored to the current scan position; do not begin
// it with ^. Within a state, earlier-added patterns win over later ones.
func (lx *Lexer) AddPattern(pat string, action Action, forState string) error {
	compiled, err := regexp.Compile(`^(?:` + pat + `)`)
	if err != nil {
		return fmt.Errorf("cannot compile regex: %w", err)
	}

	// a paint-and-shift targeting "" is a legal shift back to the empty-named
	// start state; only a bare shift with no target is malformed
	if action.Type == ActionState && action.State == "" {
		return fmt.Errorf("action is a state shift but does not define the state to shift to")
	}

	record := patAct{
		src: pat,
		pat: compiled,
		act: action,
	}
	lx.patterns[forState] = append(lx.patterns[forState], record)

	return nil
}

// Paint fills styles with one style byte per byte of buf. The styles slice
// must be at least len(buf) long; only the first len(buf) bytes are written.
// The scan starts in the lexer's starting state and runs to the end of the
// buffer; it cannot fail once the lexer is built, and always terminates
// because every iteration advances by at least one byte.
//
// ctx is handed unchanged to every Resolve func consulted during the scan;
// it carries whatever per-call data the resolvers need. A Lexer itself holds
// no per-call state, so concurrent Paint calls with their own ctx values are
// safe.
func (lx *Lexer) Paint(buf []byte, styles []byte, ctx interface{}) {
	state := lx.startState
	cur := 0

	for cur < len(buf) {
		rest := buf[cur:]
		matched := false

		for _, pa := range lx.patterns[state] {
			loc := pa.pat.FindIndex(rest)
			if loc == nil || loc[1] == 0 {
				// zero-length matches are treated as no match so the scan is
				// guaranteed to advance
				continue
			}
			n := loc[1]

			style := lx.defaultStyle
			switch pa.act.Type {
			case ActionPaint, ActionPaintAndState:
				style = pa.act.Style
				if pa.act.Resolve != nil {
					style = pa.act.Resolve(string(rest[:n]), ctx)
				}
			}

			for i := cur; i < cur+n; i++ {
				styles[i] = byte(style)
			}

			if pa.act.Type == ActionState || pa.act.Type == ActionPaintAndState {
				state = pa.act.State
			}

			cur += n
			matched = true
			break
		}

		if !matched {
			styles[cur] = byte(lx.defaultStyle)
			cur++
		}
	}
}
