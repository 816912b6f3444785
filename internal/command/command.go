// Package command defines console command data types and handles parsing of
// commands from input sources.
package command

// Command is a valid command received from a console input source.
type Command struct {

	// Verb is the canonical name of the command being invoked, such as "LANG",
	// "TOK", or "QUIT". Some verbs may have shorthand forms which are typed
	// differently, for instance "T" could be typed instead of "TOK", or
	// "LANGUAGE" instead of "LANG", and for all those cases they would result
	// in a Command with the canonical verb.
	Verb string

	// Recipient is the primary argument of the verb, for instance the language
	// name in "LANG go" or the property key in "SET lexer.caseless yes". For
	// verbs that operate on free text, such as TOK, it is the text with its
	// original casing preserved.
	Recipient string

	// Instrument is the secondary argument of the verb, for instance the words
	// in "LIST 0 if else for" or the value in "SET lexer.caseless yes". Its
	// original casing is preserved. The exact meaning depends on the verb.
	Instrument string
}
