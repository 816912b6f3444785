package lexers

import (
	"strings"

	"github.com/dekarrin/sterling/internal/relex"
)

// KeywordRule maps a word list slot to the style painted over lexemes found
// in that slot's list. Rules are checked in order and the first slot whose
// list contains the lexeme wins.
type KeywordRule struct {
	Slot  int
	Style int
}

// PatternEngine is an Engine whose language is defined by regex patterns over
// lexer states, with optional keyword rules that restyle matched identifiers
// by word-list membership. The built-in pattern languages and every language
// loaded from an SLD file are PatternEngines.
//
// Build one with NewPatternEngine and the Add* methods, all before the first
// Classify call. After building, the engine is immutable; the word lists and
// properties of each Classify call are kept in call-local state, so one
// PatternEngine may serve concurrent classifications.
type PatternEngine struct {
	descs        []string
	base         *relex.Lexer
	caselessProp string
}

// kwContext is the call-local keyword state of one Classify call, threaded to
// the keyword resolvers through relex's paint context.
type kwContext struct {
	sets     []map[string]bool
	caseless bool
}

// NewPatternEngine creates a PatternEngine with one word list slot per given
// description. Unclaimed bytes are painted with the given default style.
func NewPatternEngine(defaultStyle int, wordListDescriptions ...string) *PatternEngine {
	descs := make([]string, len(wordListDescriptions))
	copy(descs, wordListDescriptions)

	return &PatternEngine{
		descs: descs,
		base:  relex.NewLexer(defaultStyle),
	}
}

// SetCaselessProperty names a property that, when set to "1" in the property
// set of a classification call, makes keyword lookups case-insensitive for
// that call.
func (pe *PatternEngine) SetCaselessProperty(key string) {
	pe.caselessProp = key
}

// AddPattern adds a pattern with a fixed action to the given lexer state. See
// [relex.Lexer.AddPattern].
func (pe *PatternEngine) AddPattern(pat string, act relex.Action, forState string) error {
	return pe.base.AddPattern(pat, act, forState)
}

// AddKeywordPattern adds a pattern whose matches are styled identStyle unless
// one of the keyword rules claims the lexeme, in which case the rule's style
// is painted instead.
func (pe *PatternEngine) AddKeywordPattern(pat string, forState string, identStyle int, rules ...KeywordRule) error {
	act := relex.PaintWith(func(lexeme string, ctx interface{}) int {
		return resolveKeyword(lexeme, ctx.(kwContext), identStyle, rules)
	})
	return pe.base.AddPattern(pat, act, forState)
}

func resolveKeyword(lexeme string, ctx kwContext, identStyle int, rules []KeywordRule) int {
	check := lexeme
	if ctx.caseless {
		check = strings.ToLower(check)
	}

	for _, rule := range rules {
		if rule.Slot < 0 || rule.Slot >= len(ctx.sets) {
			continue
		}
		if ctx.sets[rule.Slot][check] {
			return rule.Style
		}
	}
	return identStyle
}

// NumWordLists returns the number of word list slots the language declares.
func (pe *PatternEngine) NumWordLists() int {
	return len(pe.descs)
}

// WordListDescriptions returns the declared purpose of each word list slot.
func (pe *PatternEngine) WordListDescriptions() []string {
	descs := make([]string, len(pe.descs))
	copy(descs, pe.descs)
	return descs
}

// Classify implements Engine. Word lists beyond the declared slot count are
// accepted and simply never consulted by any keyword rule.
func (pe *PatternEngine) Classify(buf []byte, styles []byte, props Properties, wordLists []string) error {
	ctx := kwContext{
		caseless: pe.caselessProp != "" && props != nil && props.Get(pe.caselessProp) == "1",
		sets:     make([]map[string]bool, len(wordLists)),
	}

	for i := range wordLists {
		set := map[string]bool{}
		for _, w := range strings.Fields(wordLists[i]) {
			if ctx.caseless {
				w = strings.ToLower(w)
			}
			set[w] = true
		}
		ctx.sets[i] = set
	}

	pe.base.Paint(buf, styles, ctx)
	return nil
}
