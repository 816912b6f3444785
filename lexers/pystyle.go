package lexers

import "github.com/dekarrin/sterling/internal/relex"

// newPyStyleEngine builds the engine for the "pystyle" language, which styles
// Python-like source: # comments, triple-quoted and single-line strings,
// numbers, operators, and identifiers. Identifiers found in word list slot 0
// are styled StyleKeyword.
func newPyStyleEngine() *PatternEngine {
	pe := NewPatternEngine(StyleDefault, "Python keywords")

	var err error

	addPattern := func(pat string, act relex.Action, state string) {
		if err == nil {
			err = pe.AddPattern(pat, act, state)
		}
	}

	addPattern(`#[^\n]*`, relex.Paint(StyleComment), "")

	// triple-quoted strings may span lines; an unterminated one runs to the
	// end of the buffer
	addPattern(`"""(?s:.*?)"""|"""(?s:.*)`, relex.Paint(StyleString), "")
	addPattern(`'''(?s:.*?)'''|'''(?s:.*)`, relex.Paint(StyleString), "")

	addPattern(`"(?:\\.|[^"\\\n])*"?`, relex.Paint(StyleString), "")
	addPattern(`'(?:\\.|[^'\\\n])*'?`, relex.Paint(StyleString), "")
	addPattern(`0[xXoObB][0-9a-fA-F]+`, relex.Paint(StyleNumber), "")
	addPattern(`[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?[jJ]?`, relex.Paint(StyleNumber), "")
	addPattern(`[ \t\r\n]+`, relex.Discard(), "")
	addPattern(`[-+*/%<>=!&|^~@:;.,(){}\[\]]+`, relex.Paint(StyleOperator), "")

	if err == nil {
		err = pe.AddKeywordPattern(`[A-Za-z_][A-Za-z0-9_]*`, "", StyleIdentifier,
			KeywordRule{Slot: 0, Style: StyleKeyword},
		)
	}

	if err != nil {
		panic("building pystyle engine: " + err.Error())
	}

	return pe
}

func init() {
	MustRegister("pystyle", newPyStyleEngine())
}
