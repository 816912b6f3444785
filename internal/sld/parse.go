package sld

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/sterling/internal/relex"
	"github.com/dekarrin/sterling/lexers"
)

var styleNames = map[string]int{
	"default":    lexers.StyleDefault,
	"comment":    lexers.StyleComment,
	"number":     lexers.StyleNumber,
	"string":     lexers.StyleString,
	"operator":   lexers.StyleOperator,
	"identifier": lexers.StyleIdentifier,
	"keyword":    lexers.StyleKeyword,
	"keyword2":   lexers.StyleKeyword2,
	"whitespace": lexers.StyleWhitespace,
}

func parseManifest(sld topLevelManifest) (Manifest, error) {
	manif := Manifest{
		Files: sld.Files,
	}

	return manif, nil
}

// parseStyle resolves a style given either as one of the standard style
// names or as a number 0-255.
func parseStyle(s string) (int, error) {
	if style, ok := styleNames[strings.ToLower(s)]; ok {
		return style, nil
	}

	style, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a style name or number", s)
	}
	if style < 0 || style > 255 {
		return 0, fmt.Errorf("style number %d is not within 0-255", style)
	}
	return style, nil
}

func parseLanguage(sld topLevelLanguage) (Language, error) {
	if sld.Language.Name == "" {
		return Language{}, fmt.Errorf("language: 'name' must exist and be non-empty")
	}

	defaultStyle := lexers.StyleDefault
	if sld.Language.DefaultStyle != "" {
		var err error
		defaultStyle, err = parseStyle(sld.Language.DefaultStyle)
		if err != nil {
			return Language{}, fmt.Errorf("language: default_style: %w", err)
		}
	}

	descs := make([]string, len(sld.WordLists))
	for i := range sld.WordLists {
		descs[i] = sld.WordLists[i].Description
	}

	eng := lexers.NewPatternEngine(defaultStyle, descs...)
	if sld.Language.CaselessProperty != "" {
		eng.SetCaselessProperty(sld.Language.CaselessProperty)
	}

	for i, pat := range sld.Patterns {
		if err := addPattern(eng, pat, len(descs)); err != nil {
			return Language{}, fmt.Errorf("pattern[%d]: %w", i, err)
		}
	}

	return Language{
		Name:   sld.Language.Name,
		Engine: eng,
	}, nil
}

func addPattern(eng *lexers.PatternEngine, pat pattern, numLists int) error {
	if pat.Regex == "" {
		return fmt.Errorf("'regex' must exist and be non-empty")
	}

	if len(pat.Keywords) > 0 {
		if pat.Discard {
			return fmt.Errorf("keyword rules cannot be combined with 'discard'")
		}
		if pat.Shift != "" {
			return fmt.Errorf("keyword rules cannot be combined with 'shift'")
		}
		if pat.Style == "" {
			return fmt.Errorf("a pattern with keyword rules must give the 'style' painted when no rule matches")
		}

		identStyle, err := parseStyle(pat.Style)
		if err != nil {
			return fmt.Errorf("style: %w", err)
		}

		rules := make([]lexers.KeywordRule, len(pat.Keywords))
		for i, kw := range pat.Keywords {
			if kw.List < 0 || kw.List >= numLists {
				return fmt.Errorf("keyword[%d]: list %d does not exist; file defines %d word list(s)", i, kw.List, numLists)
			}
			style, err := parseStyle(kw.Style)
			if err != nil {
				return fmt.Errorf("keyword[%d]: style: %w", i, err)
			}
			rules[i] = lexers.KeywordRule{Slot: kw.List, Style: style}
		}

		return eng.AddKeywordPattern(pat.Regex, pat.State, identStyle, rules...)
	}

	if pat.Discard {
		if pat.Style != "" {
			return fmt.Errorf("'discard' cannot be combined with 'style'")
		}
		if pat.Shift != "" {
			return eng.AddPattern(pat.Regex, relex.SwapState(pat.Shift), pat.State)
		}
		return eng.AddPattern(pat.Regex, relex.Discard(), pat.State)
	}

	if pat.Style != "" {
		style, err := parseStyle(pat.Style)
		if err != nil {
			return fmt.Errorf("style: %w", err)
		}
		if pat.Shift != "" {
			return eng.AddPattern(pat.Regex, relex.PaintAndSwapState(style, pat.Shift), pat.State)
		}
		return eng.AddPattern(pat.Regex, relex.Paint(style), pat.State)
	}

	if pat.Shift != "" {
		return eng.AddPattern(pat.Regex, relex.SwapState(pat.Shift), pat.State)
	}

	return fmt.Errorf("must have at least one of 'style', 'discard', 'shift', or keyword rules")
}
