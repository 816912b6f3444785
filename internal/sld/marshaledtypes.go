package sld

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// topLevelLanguage is the top-level structure containing all keys in a
// complete SLD 'LANGUAGE' type file.
type topLevelLanguage struct {
	Format    string         `toml:"format"`
	Type      string         `toml:"type"`
	Language  languageHeader `toml:"language"`
	WordLists []wordList     `toml:"wordlist"`
	Patterns  []pattern      `toml:"pattern"`
}

type languageHeader struct {
	Name             string `toml:"name"`
	DefaultStyle     string `toml:"default_style"`
	CaselessProperty string `toml:"caseless_property"`
}

type wordList struct {
	Description string `toml:"description"`
}

// pattern is one regex rule of a language. State selects which lexer state
// the rule applies in, with the empty string being the starting state. At
// most one of style, discard, or a keyword rule list may be given; shift may
// combine with style or discard but not with keyword rules.
type pattern struct {
	Regex    string        `toml:"regex"`
	Style    string        `toml:"style"`
	State    string        `toml:"state"`
	Shift    string        `toml:"shift"`
	Discard  bool          `toml:"discard"`
	Keywords []keywordRule `toml:"keyword"`
}

type keywordRule struct {
	List  int    `toml:"list"`
	Style string `toml:"style"`
}
