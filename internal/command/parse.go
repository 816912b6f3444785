package command

import (
	"strings"

	"github.com/dekarrin/sterling/internal/cmderrors"
)

var (
	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all uppercase.
	VerbAliases map[string]string = map[string]string{
		"TOKENIZE":  "TOK",
		"T":         "TOK",
		"LANGUAGE":  "LANG",
		"L":         "LANG",
		"LANGUAGES": "LANGS",
		"ENC":       "ENCODING",
		"PROPERTY":  "SET",
		"PROP":      "SET",
		"BYE":       "QUIT",
		"EXIT":      "QUIT",
		"?":         "HELP",
		"/?":        "HELP",
		"/H":        "HELP",
		"-H":        "HELP",
		"H":         "HELP",
	}
)

// ParseCommand parses a command from the given text. If it cannot, a non-nil
// error is returned.
//
// If an empty string or a string composed only of whitespace is passed in, nil
// error is returned and a zero value for Command will be returned.
func ParseCommand(toParse string) (Command, error) {
	var parsedCmd Command

	// make entire input upper case to make verb matching easy
	normalizedCase := strings.ToUpper(toParse)

	// now tokenize our string, collapsing all whitespace
	originalTokens := strings.Fields(normalizedCase)

	// expand verb aliases, 1 word long only
	tokens := ExpandAliases(originalTokens, 1)

	// some simple sanity checking, make sure we at least have a command
	if len(tokens) < 1 {
		return parsedCmd, nil
	}

	// arguments that care about casing are taken from here instead of from the
	// normalized tokens
	casedTokens := strings.Fields(toParse)

	// set verb as the first word here
	parsedCmd.Verb = tokens[0]

	switch parsedCmd.Verb {
	case "HELP":
		// help takes an optional argument
		if len(tokens) > 1 {
			parsedCmd.Recipient = tokens[1]
		}
	case "TOK":
		// everything after the verb is the text, casing preserved
		if len(casedTokens) < 2 {
			return parsedCmd, cmderrors.Interpreterf("I don't know what text you want to tokenize")
		}
		parsedCmd.Recipient = strings.Join(casedTokens[1:], " ")
	case "LANG":
		// which language?
		if len(tokens) < 2 {
			return parsedCmd, cmderrors.Interpreterf("I don't know which language you want; try LANGS to list them")
		}
		parsedCmd.Recipient = strings.Join(casedTokens[1:], " ")
	case "LIST":
		// need the slot number and the words
		if len(tokens) < 2 {
			return parsedCmd, cmderrors.Interpreterf("I don't know which word list slot you want to set")
		}
		parsedCmd.Recipient = tokens[1]
		if len(casedTokens) > 2 {
			parsedCmd.Instrument = strings.Join(casedTokens[2:], " ")
		}
	case "SET":
		// need the property key; the value may be blank
		if len(tokens) < 2 {
			return parsedCmd, cmderrors.Interpreterf("I don't know which property you want to set")
		}
		parsedCmd.Recipient = casedTokens[1]
		if len(casedTokens) > 2 {
			parsedCmd.Instrument = strings.Join(casedTokens[2:], " ")
		}
	case "ENCODING":
		// which encoding?
		if len(tokens) < 2 {
			return parsedCmd, cmderrors.Interpreterf("I don't know which encoding you want")
		}
		parsedCmd.Recipient = casedTokens[1]
	case "LOAD":
		// need the file path, casing preserved
		if len(tokens) < 2 {
			return parsedCmd, cmderrors.Interpreterf("I don't know which file you want to load")
		}
		parsedCmd.Recipient = strings.Join(casedTokens[1:], " ")
	case "LANGS", "LISTS", "PROPS", "JSON":
		// ensure there are no additional args
		if len(tokens) > 1 {
			errMsg := "You can't %s *something*; type %s by itself"
			return parsedCmd, cmderrors.Interpreterf(errMsg, originalTokens[0], originalTokens[0])
		}
	case "QUIT":
		// quit takes no additional args, make sure this is true
		if len(tokens) > 1 {
			errMsg := "You can't %s *something*; type %s by itself to quit"
			return parsedCmd, cmderrors.Interpreterf(errMsg, originalTokens[0], originalTokens[0])
		}
	default:
		return parsedCmd, cmderrors.Interpreterf("I don't know what you mean by %q", originalTokens[0])
	}

	return parsedCmd, nil
}

// ExpandAliases takes a slice of tokens of user input and runs alias expansion
// on it. It expects all strings in the given slice to be upper case; failure to
// ensure this may cause the expansion to not work properly. The returned slice
// contains the same tokens but with aliases expanded.
//
// The unexpanded tokens slice is not modified during this operation.
//
// Aliases up to aliasLimit words long are supported. If it is less than 0, it
// is assumed to be 0. Passing 0 means the given tokens will be returned
// unchanged.
//
// Aliases will not be multi-expanded; that is, expansion is not applied to the
// results of an expansion; if the caller needs it, they will need to call
// ExpandAliases again on its output.
func ExpandAliases(tokens []string, aliasLimit int) []string {
	expandedTokens := append([]string{}, tokens...)
	if aliasLimit < 1 {
		return expandedTokens
	}

	// only modify verb up to minimum of limit and number of tokens
	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	for curLimit := 1; curLimit <= aliasLimit; curLimit++ {
		checkStr := strings.Join(tokens[:curLimit], " ")
		expansion, ok := VerbAliases[checkStr]
		if ok {
			replacementTokens := strings.Fields(expansion)

			// luckily, we know we are operating from start of tokens passed in so we can just trash
			// all those in the checkStr and replace with the replacementTokens slice
			expandedTokens = append(replacementTokens, tokens[curLimit:]...)

			// we gaurantee only one single substitution, so we can immediately exit
			return expandedTokens
		}
	}

	return expandedTokens
}
