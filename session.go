package sterling

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/sterling/internal/cmderrors"
	"github.com/dekarrin/sterling/internal/command"
	"github.com/dekarrin/sterling/internal/input"
	"github.com/dekarrin/sterling/internal/sld"
	"github.com/dekarrin/sterling/internal/util"
	"github.com/dekarrin/sterling/lexers"
)

const consoleOutputWidth = 80

var commandHelp = [][2]string{
	{"HELP", "show this help"},
	{"TOK text", "tokenize the given text with the current language"},
	{"LANG name", "switch to the named language; close-enough names are accepted"},
	{"LANGS", "list every language that can be tokenized"},
	{"LISTS", "show the word list slots of the current language"},
	{"LIST n words...", "fill word list slot n with the given words, or clear it"},
	{"SET key value", "set a lexer property"},
	{"PROPS", "show all lexer properties that have been set"},
	{"ENCODING name", "treat TOK text as being in the named character encoding"},
	{"JSON", "toggle JSON output of tokens"},
	{"LOAD file", "load languages from an SLD definition or manifest file"},
	{"QUIT", "end the session"},
}

// Session is an interactive tokenization console attached to an input stream
// and an output stream. It reads commands and applies them to a Styler whose
// language, word lists, and properties persist between commands.
type Session struct {
	in          command.Reader
	out         *bufio.Writer
	forceDirect bool
	running     bool

	styler    *Styler
	wordLists []WordList
	props     *PropertySet
	encoding  string
	jsonOut   bool
}

// NewSession creates a new console session ready to operate on the given input
// and output streams. It will immediately open a buffered reader on the input
// stream and a buffered writer on the output stream. The session starts with
// the given language selected, or the null lexer if language is empty.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
func NewSession(inputStream io.Reader, outputStream io.Writer, language string, forceDirectInput bool) (*Session, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if language == "" {
		language = "null"
	}

	props, err := NewPropertySet()
	if err != nil {
		return nil, fmt.Errorf("initializing properties: %w", err)
	}

	ses := &Session{
		out:         bufio.NewWriter(outputStream),
		running:     false,
		forceDirect: forceDirectInput,
		props:       props,
		encoding:    "utf-8",
	}

	if err := ses.setLanguage(language); err != nil {
		return nil, err
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		ses.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		ses.in = input.NewDirectReader(inputStream)
	}

	return ses, nil
}

// Close closes all resources associated with the Session, including any
// readline-related resources created for interactive mode.
func (ses *Session) Close() error {
	if ses.running {
		return fmt.Errorf("cannot close a running session")
	}

	err := ses.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the session until the QUIT command is received.
func (ses *Session) RunUntilQuit() error {
	introMsg := "Welcome to the Sterling tokenizer\n"
	if ses.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "================================\n"
	introMsg += "\n"
	introMsg += "Language is " + ses.styler.Language() + "; type HELP for commands\n"

	if _, err := ses.out.WriteString(introMsg); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := ses.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}

	ses.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		ses.running = false
	}()

	for ses.running {
		cmd, err := command.Get(ses.in, ses.out)
		if err != nil {
			return fmt.Errorf("get user command: %w", err)
		}

		if cmd.Verb == "QUIT" {
			ses.running = false
			break
		}

		output, err := ses.executeCommand(cmd)
		if err != nil {
			output = cmderrors.ConsoleMessage(err)
			output = rosed.Edit(output).Wrap(consoleOutputWidth).String()
		}
		if _, err := ses.out.WriteString(output + "\n"); err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
		if err := ses.out.Flush(); err != nil {
			return fmt.Errorf("could not flush output: %w", err)
		}
	}

	if _, err := ses.out.WriteString("Goodbye\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := ses.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}

	return nil
}

// executeCommand applies a single parsed command to the session and returns
// the output to show for it.
func (ses *Session) executeCommand(cmd command.Command) (string, error) {
	switch cmd.Verb {
	case "HELP":
		ed := rosed.
			Edit("").
			WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
			InsertDefinitionsTable(0, commandHelp, consoleOutputWidth)
		return ed.
			Insert(0, "Here are the commands you can use:\n").
			String(), nil
	case "TOK":
		return ses.tokenize(cmd.Recipient)
	case "LANG":
		name, err := lexers.FindName(cmd.Recipient)
		if err != nil {
			return "", cmderrors.WrapInterpreterf(err, "I don't know a language called %q; try LANGS to list them", cmd.Recipient)
		}
		if err := ses.setLanguage(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("Language is now %s", name), nil
	case "LANGS":
		return ses.listLanguages(), nil
	case "LISTS":
		return ses.listWordListSlots()
	case "LIST":
		return ses.setWordList(cmd.Recipient, cmd.Instrument)
	case "SET":
		ses.props.Set(cmd.Recipient, cmd.Instrument)
		return fmt.Sprintf("Set %s to %q", cmd.Recipient, cmd.Instrument), nil
	case "PROPS":
		return ses.listProperties(), nil
	case "ENCODING":
		ses.encoding = cmd.Recipient
		return fmt.Sprintf("TOK text is now read as %s", ses.encoding), nil
	case "JSON":
		ses.jsonOut = !ses.jsonOut
		if ses.jsonOut {
			return "Token output is now JSON", nil
		}
		return "Token output is now a table", nil
	case "LOAD":
		langs, err := sld.RegisterPack(cmd.Recipient)
		if err != nil {
			return "", cmderrors.WrapInterpreterf(err, "I can't load that file: %s", err.Error())
		}
		names := make([]string, len(langs))
		for i := range langs {
			names[i] = langs[i].Name
		}
		return fmt.Sprintf("Loaded %s", util.MakeTextList(names)), nil
	default:
		return "", cmderrors.Interpreterf("I don't know how to %q", cmd.Verb)
	}
}

// setLanguage switches the session's Styler and resets the word list slots to
// the new language's count.
func (ses *Session) setLanguage(name string) error {
	st, err := NewStyler(name)
	if err != nil {
		return cmderrors.WrapInterpreterf(err, "I can't use language %q: %s", name, err.Error())
	}

	ses.styler = st
	ses.wordLists = nil
	if n, err := st.NumWordLists(); err == nil {
		ses.wordLists = make([]WordList, n)
	}

	return nil
}

func (ses *Session) tokenize(text string) (string, error) {
	toks, err := ses.styler.TokenizeByStyle([]byte(text), ses.encoding, ses.wordLists, ses.props, nil)
	if err != nil {
		return "", cmderrors.WrapInterpreterf(err, "I can't tokenize that: %s", err.Error())
	}

	if ses.jsonOut {
		jsonData, err := json.MarshalIndent(toks, "", "  ")
		if err != nil {
			return "", fmt.Errorf("could not marshal tokens: %w", err)
		}
		return string(jsonData), nil
	}

	data := [][]string{{"Style", "Text", "Start", "End"}}
	for _, tok := range toks {
		data = append(data, []string{
			strconv.Itoa(tok.Style),
			strconv.Quote(tok.Text),
			fmt.Sprintf("%d:%d", tok.StartLine, tok.StartColumn),
			fmt.Sprintf("%d:%d", tok.EndLine, tok.EndColumn),
		})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String(), nil
}

func (ses *Session) listLanguages() string {
	data := [][]string{{"Language", "Word lists"}}

	for _, name := range lexers.Names() {
		eng, err := lexers.Lookup(name)
		if err != nil {
			continue
		}

		numStr := "?"
		if n := eng.NumWordLists(); n != lexers.NumWordListsUnknown {
			numStr = strconv.Itoa(n)
		}
		data = append(data, []string{name, numStr})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String()
}

func (ses *Session) listWordListSlots() (string, error) {
	descs, err := ses.styler.WordListDescriptions()
	if err != nil {
		return "", cmderrors.WrapInterpreterf(err, "%s doesn't say what its word lists are", ses.styler.Language())
	}
	if len(descs) == 0 {
		return ses.styler.Language() + " has no word list slots", nil
	}

	data := [][]string{{"Slot", "Description", "Words"}}
	for i, desc := range descs {
		words := ""
		if i < len(ses.wordLists) {
			words = ses.wordLists[i].String()
		}
		data = append(data, []string{strconv.Itoa(i), desc, words})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String(), nil
}

func (ses *Session) setWordList(slotStr, words string) (string, error) {
	slot, err := strconv.Atoi(slotStr)
	if err != nil || slot < 0 {
		return "", cmderrors.Interpreterf("%q is not a valid word list slot number", slotStr)
	}

	if n, err := ses.styler.NumWordLists(); err == nil && slot >= n {
		return "", cmderrors.Interpreterf("%s only has %d word list slot(s)", ses.styler.Language(), n)
	}

	for slot >= len(ses.wordLists) {
		ses.wordLists = append(ses.wordLists, WordList{})
	}
	ses.wordLists[slot] = NewWordList(words)

	if words == "" {
		return fmt.Sprintf("Cleared word list slot %d", slot), nil
	}
	return fmt.Sprintf("Set word list slot %d", slot), nil
}

func (ses *Session) listProperties() string {
	keys := ses.props.Keys()
	if len(keys) == 0 {
		return "No properties are set"
	}

	data := [][]string{{"Property", "Value"}}
	for _, k := range keys {
		data = append(data, []string{k, ses.props.Get(k)})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String()
}
