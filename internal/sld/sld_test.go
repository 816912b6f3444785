package sld

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/sterling/lexers"
	"github.com/stretchr/testify/assert"
)

const iniDef = `
format = "STERLING"
type = "LANGUAGE"

[language]
name = "ini"
default_style = "default"

[[wordlist]]
description = "Reserved section names"

[[pattern]]
regex = ';[^\n]*'
style = "comment"

[[pattern]]
regex = '\[[^\]\n]*\]'
style = "keyword"

[[pattern]]
regex = '[A-Za-z_][A-Za-z0-9_.]*'
style = "identifier"

	[[pattern.keyword]]
	list = 0
	style = "keyword2"

[[pattern]]
regex = '='
style = "operator"

[[pattern]]
regex = '[ \t\n]+'
discard = true
`

func Test_ScanFileInfo(t *testing.T) {
	assert := assert.New(t)

	info, err := ScanFileInfo([]byte(iniDef))
	if !assert.NoError(err) {
		return
	}

	assert.Equal("STERLING", info.Format)
	assert.Equal("LANGUAGE", info.Type)
}

func Test_ParseLanguage(t *testing.T) {
	assert := assert.New(t)

	lang, err := ParseLanguage([]byte(iniDef))
	if !assert.NoError(err) {
		return
	}

	assert.Equal("ini", lang.Name)
	assert.Equal(1, lang.Engine.NumWordLists())
	assert.Equal([]string{"Reserved section names"}, lang.Engine.WordListDescriptions())

	buf := []byte("[core]\nx=1")
	styles := make([]byte, len(buf))
	err = lang.Engine.Classify(buf, styles, nil, []string{""})
	if !assert.NoError(err) {
		return
	}

	// "[core]" is a section header
	for i := 0; i <= 5; i++ {
		assert.Equal(byte(lexers.StyleKeyword), styles[i], "byte %d", i)
	}
	assert.Equal(byte(lexers.StyleIdentifier), styles[7])
	assert.Equal(byte(lexers.StyleOperator), styles[8])
	// "1" matches no pattern and stays default
	assert.Equal(byte(lexers.StyleDefault), styles[9])
}

func Test_ParseLanguage_keywordRule(t *testing.T) {
	assert := assert.New(t)

	lang, err := ParseLanguage([]byte(iniDef))
	if !assert.NoError(err) {
		return
	}

	buf := []byte("remote")
	styles := make([]byte, len(buf))
	err = lang.Engine.Classify(buf, styles, nil, []string{"core remote"})
	if !assert.NoError(err) {
		return
	}

	for i := range styles {
		assert.Equal(byte(lexers.StyleKeyword2), styles[i], "byte %d", i)
	}
}

func Test_ParseLanguage_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "wrong format",
			input: "format = \"PELICAN\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n",
		},
		{
			name:  "wrong type",
			input: "format = \"STERLING\"\ntype = \"MANIFEST\"\n\n[language]\nname = \"x\"\n",
		},
		{
			name:  "missing name",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\ndefault_style = \"default\"\n",
		},
		{
			name:  "bad style name",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nregex = 'a'\nstyle = \"chartreuse\"\n",
		},
		{
			name:  "style number out of range",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nregex = 'a'\nstyle = \"256\"\n",
		},
		{
			name:  "empty regex",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nstyle = \"comment\"\n",
		},
		{
			name:  "bad regex",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nregex = '[unclosed'\nstyle = \"comment\"\n",
		},
		{
			name:  "pattern with no action",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nregex = 'a'\n",
		},
		{
			name:  "keyword rule names missing list",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nregex = 'a'\nstyle = \"identifier\"\n\n[[pattern.keyword]]\nlist = 0\nstyle = \"keyword\"\n",
		},
		{
			name:  "discard combined with style",
			input: "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nregex = 'a'\nstyle = \"comment\"\ndiscard = true\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseLanguage([]byte(tc.input))
			assert.Error(err)
		})
	}
}

func Test_ParseLanguage_numericStyle(t *testing.T) {
	assert := assert.New(t)

	input := "format = \"STERLING\"\ntype = \"LANGUAGE\"\n\n[language]\nname = \"x\"\n\n[[pattern]]\nregex = 'a+'\nstyle = \"17\"\n"
	lang, err := ParseLanguage([]byte(input))
	if !assert.NoError(err) {
		return
	}

	buf := []byte("aaa")
	styles := make([]byte, len(buf))
	err = lang.Engine.Classify(buf, styles, nil, nil)
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]byte{17, 17, 17}, styles)
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func Test_LoadPack_manifest(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeTestFile(t, dir, "ini.sld", iniDef)
	manifPath := writeTestFile(t, dir, "pack.sld", "format = \"STERLING\"\ntype = \"MANIFEST\"\nfiles = [\"ini.sld\"]\n")

	langs, err := LoadPack(manifPath)
	if !assert.NoError(err) {
		return
	}

	if !assert.Len(langs, 1) {
		return
	}
	assert.Equal("ini", langs[0].Name)
}

func Test_LoadPack_emptyManifest(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	manifPath := writeTestFile(t, dir, "pack.sld", "format = \"STERLING\"\ntype = \"MANIFEST\"\nfiles = []\n")

	_, err := LoadPack(manifPath)
	assert.ErrorIs(err, ErrManifestEmpty)
}

func Test_LoadPack_circularManifestSkipped(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeTestFile(t, dir, "ini.sld", iniDef)
	manifPath := writeTestFile(t, dir, "pack.sld", "format = \"STERLING\"\ntype = \"MANIFEST\"\nfiles = [\"pack.sld\", \"ini.sld\"]\n")

	langs, err := LoadPack(manifPath)
	if !assert.NoError(err) {
		return
	}

	// the self-reference is skipped, not an error
	if !assert.Len(langs, 1) {
		return
	}
	assert.Equal("ini", langs[0].Name)
}

func Test_LoadPack_duplicateLanguage(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeTestFile(t, dir, "ini.sld", iniDef)
	writeTestFile(t, dir, "ini2.sld", iniDef)
	manifPath := writeTestFile(t, dir, "pack.sld", "format = \"STERLING\"\ntype = \"MANIFEST\"\nfiles = [\"ini.sld\", \"ini2.sld\"]\n")

	_, err := LoadPack(manifPath)
	assert.Error(err)
}
