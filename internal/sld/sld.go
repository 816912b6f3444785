// Package sld has functions for loading language definitions using the SLD
// (Sterling Language Definition) file format, a TOML-based format that
// defines pattern-based style engines without recompiling. An SLD file is
// either a LANGUAGE file holding one language definition or a MANIFEST file
// listing further SLD files to load relative to itself.
package sld

import (
	"errors"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/sterling/lexers"
)

const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recursion level
	// of MaxManifestRecursionDepth is reached and an additional Manifest is
	// then specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies
	// any series of files that with their own manifests refer back to the
	// original manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest contains data loaded from an SLD Manifest file.
type Manifest struct {
	Files []string
}

// Language is a language definition loaded from an SLD LANGUAGE file, ready
// to be registered.
type Language struct {
	// Name is the name the language registers under.
	Name string

	// Engine styles buffers according to the loaded definition.
	Engine *lexers.PatternEngine
}

// FileInfo contains the essential information all SLD format files must
// contain. It can be obtained from a file by reading it into memory and
// calling ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// LoadPack loads language definitions from the given SLD file. The file's
// type is auto-detected and decoding is handled appropriately; the type can
// either be "LANGUAGE" type or "MANIFEST" type; if it's manifest type, the
// files listed in it relative to it will also be loaded, recursively for any
// manifests among them.
func LoadPack(path string) ([]Language, error) {
	langs, err := recursiveLoadResource(path, nil)
	if err != nil {
		return nil, err
	}

	return langs, nil
}

// RegisterPack loads language definitions from the given SLD file as
// LoadPack does, then registers each one. Registration stops at the first
// name that is already taken.
func RegisterPack(path string) ([]Language, error) {
	langs, err := LoadPack(path)
	if err != nil {
		return nil, err
	}

	for _, lang := range langs {
		if err := lexers.Register(lang.Name, lang.Engine); err != nil {
			return nil, err
		}
	}

	return langs, nil
}

// LoadManifestFile loads manifest data from an SLD file.
func LoadManifestFile(path string) (manif Manifest, err error) {
	manifestData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return manif, loadErr
	}

	unmarshaled, err := unmarshalManifest(manifestData)
	if err != nil {
		return manif, err
	}
	return parseManifest(unmarshaled)
}

// LoadLanguageFile loads a language from a language definition file.
func LoadLanguageFile(path string) (lang Language, err error) {
	langData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return lang, loadErr
	}

	return ParseLanguage(langData)
}

// ParseLanguage parses a language definition from the bytes of an SLD
// LANGUAGE file.
func ParseLanguage(data []byte) (Language, error) {
	unmarshaled, err := unmarshalLanguage(data)
	if err != nil {
		return Language{}, err
	}

	return parseLanguage(unmarshaled)
}

// ScanFileInfo takes the given bytes and attempts to read the SLD format
// common header info from it. The bytes are read up to the first instance of
// a table definition header and those bytes are parsed for the info. If
// there is an error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	var onNewLine bool
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
