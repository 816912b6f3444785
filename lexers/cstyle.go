package lexers

import "github.com/dekarrin/sterling/internal/relex"

// states used by the cstyle engine
const (
	cstyleStateComment = "comment"
)

// newCStyleEngine builds the engine for the "cstyle" language, which styles
// C-family source: line and block comments, string and character literals,
// numbers, operators, and identifiers. Identifiers found in word list slot 0
// are styled StyleKeyword and ones in slot 1 StyleKeyword2, matching the
// usual split between language keywords and library or type names.
func newCStyleEngine() *PatternEngine {
	pe := NewPatternEngine(StyleDefault,
		"Primary keywords and identifiers",
		"Secondary keywords and identifiers",
	)
	pe.SetCaselessProperty("lexer.cstyle.caseless")

	var err error

	addPattern := func(pat string, act relex.Action, state string) {
		if err == nil {
			err = pe.AddPattern(pat, act, state)
		}
	}

	addPattern(`//[^\n]*`, relex.Paint(StyleComment), "")
	addPattern(`/\*`, relex.PaintAndSwapState(StyleComment, cstyleStateComment), "")
	addPattern(`"(?:\\.|[^"\\\n])*"?`, relex.Paint(StyleString), "")
	addPattern(`'(?:\\.|[^'\\\n])*'?`, relex.Paint(StyleString), "")
	addPattern(`0[xX][0-9a-fA-F]+`, relex.Paint(StyleNumber), "")
	addPattern(`[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`, relex.Paint(StyleNumber), "")
	addPattern(`[ \t\r\n]+`, relex.Discard(), "")
	addPattern(`[-+*/%<>=!&|^~?:;.,(){}\[\]#]+`, relex.Paint(StyleOperator), "")

	// inside a block comment, everything is comment until */ closes it. The
	// lone-star pattern keeps a * that does not begin */ from stalling the
	// scan.
	addPattern(`\*/`, relex.PaintAndSwapState(StyleComment, ""), cstyleStateComment)
	addPattern(`[^*]+`, relex.Paint(StyleComment), cstyleStateComment)
	addPattern(`\*`, relex.Paint(StyleComment), cstyleStateComment)

	if err == nil {
		err = pe.AddKeywordPattern(`[A-Za-z_][A-Za-z0-9_]*`, "", StyleIdentifier,
			KeywordRule{Slot: 0, Style: StyleKeyword},
			KeywordRule{Slot: 1, Style: StyleKeyword2},
		)
	}

	if err != nil {
		// the patterns are constants; a failure to build is a bug in this
		// file, not a runtime condition
		panic("building cstyle engine: " + err.Error())
	}

	return pe
}

func init() {
	MustRegister("cstyle", newCStyleEngine())
}
