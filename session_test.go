package sterling

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runSession(t *testing.T, startLang string, commands ...string) string {
	t.Helper()

	in := strings.NewReader(strings.Join(commands, "\n") + "\n")
	out := &bytes.Buffer{}

	ses, err := NewSession(in, out, startLang, true)
	if err != nil {
		t.Fatalf("could not create session: %v", err)
	}
	defer ses.Close()

	if err := ses.RunUntilQuit(); err != nil {
		t.Fatalf("session ended with error: %v", err)
	}

	return out.String()
}

func Test_Session_quit(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "", "quit")

	assert.Contains(output, "Language is null")
	assert.Contains(output, "Goodbye")
}

func Test_Session_help(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "", "help", "quit")

	assert.Contains(output, "Here are the commands you can use")
	assert.Contains(output, "TOK text")
}

func Test_Session_switchLanguageAndTokenize(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"lang cstyle",
		"list 0 if else for",
		"tok if x",
		"quit",
	)

	assert.Contains(output, "Language is now cstyle")
	assert.Contains(output, "Set word list slot 0")
	assert.Contains(output, `"if"`)
	assert.Contains(output, `"x"`)
}

func Test_Session_jsonOutput(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "null",
		"json",
		"tok abc",
		"quit",
	)

	assert.Contains(output, "Token output is now JSON")
	assert.Contains(output, `"text": "abc"`)
	assert.Contains(output, `"start_index": 0`)
}

func Test_Session_invalidCommandReprompts(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"frobnicate the words",
		"quit",
	)

	assert.Contains(output, "Try HELP for valid commands")
	assert.Contains(output, "Goodbye")
}

func Test_Session_listSlotBounds(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "cstyle",
		"list 5 if",
		"quit",
	)

	assert.Contains(output, "only has 2 word list slot(s)")
}

func Test_Session_unknownLanguage(t *testing.T) {
	assert := assert.New(t)

	output := runSession(t, "",
		"lang zzzzqqqq",
		"quit",
	)

	assert.Contains(output, "I don't know a language called")
}
