package sld

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifStack is for two reasons ->
// * detect circular deps (not an error, but we need to know to avoid them)
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returns ErrManifestEmpty if and only if the first manifest in the stack is
// empty, otherwise it is not an error.
func recursiveLoadResource(path string, manifStack []string) ([]Language, error) {
	path = filepath.Clean(path)

	fileData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return nil, fmt.Errorf("%q: reading from disk: %w", path, loadErr)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return nil, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != "STERLING" {
		return nil, fmt.Errorf("%q: file does not have a 'format = \"STERLING\" entry", path)
	}

	fileType := strings.ToUpper(fileInfo.Type)
	switch fileType {
	case "LANGUAGE":
		lang, err := ParseLanguage(fileData)
		if err != nil {
			return nil, fmt.Errorf("language file %q: %w", path, err)
		}
		return []Language{lang}, nil
	case "MANIFEST":
		// check the stack to be sure we havent recursed too far and to be sure
		// we aren't about to re-scan a circular-ref'd manifest file we've
		// already brought in.
		if len(manifStack) >= MaxManifestRecursionDepth {
			return nil, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return nil, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		unmarshaledManif, err := unmarshalManifest(fileData)
		if err != nil {
			return nil, fmt.Errorf("manifest file %q: %w", path, err)
		}
		manif, err := parseManifest(unmarshaledManif)
		if err != nil {
			return nil, fmt.Errorf("manifest file %q: %w", path, err)
		}

		// the len of manifStack is included in the check because an empty
		// manifest error is really only a problem for the very first manifest.
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return nil, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		// combine all referred to files into one single list of languages

		var langs []Language
		seenNames := map[string]string{}

		// copy the manif stack into a new value and add self to it for
		// recursive calls
		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)

		// good to know an actual count of non-skipped files so we can error on
		// the specific case of first file was manifest and referred only to
		// unreadable files
		processedFiles := 0

		for _, manifRelPath := range manif.Files {
			includedFilePath := filepath.Join(manifDir, manifRelPath)

			includedLangs, err := recursiveLoadResource(includedFilePath, manifSubStack)
			if err != nil {
				// if it's a circular reference, that's actually okay. we will
				// just skip reading it and move on to the next entry.
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}

				return nil, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			for _, lang := range includedLangs {
				if prior, ok := seenNames[lang.Name]; ok {
					return nil, fmt.Errorf("language file %q: language %q has already been defined in %q", includedFilePath, lang.Name, prior)
				}
				seenNames[lang.Name] = includedFilePath
				langs = append(langs, lang)
			}
			processedFiles++
		}

		if len(manifStack) == 0 && processedFiles == 0 {
			// then we are in a case of the first file is a manifest file, and
			// gave NO valid definitions. This is an error, fail immediately
			return nil, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}
		return langs, nil

	default:
		return nil, fmt.Errorf("%q: file does not have 'type = ' entry set to either \"LANGUAGE\" or \"MANIFEST\"", path)
	}
}

// unmarshalLanguage unmarshals a language definition from the given bytes.
// It does not parse or check the definition.
func unmarshalLanguage(tomlData []byte) (topLevelLanguage, error) {
	var sld topLevelLanguage
	if tomlErr := toml.Unmarshal(tomlData, &sld); tomlErr != nil {
		return sld, tomlErr
	}

	if strings.ToUpper(sld.Format) != "STERLING" {
		return sld, fmt.Errorf("in header: 'format' key must exist and be set to 'STERLING'")
	}
	if strings.ToUpper(sld.Type) != "LANGUAGE" {
		return sld, fmt.Errorf("in header: 'type' must exist and be set to 'LANGUAGE'")
	}

	return sld, nil
}

// unmarshalManifest unmarshals an SLD manifest from the given bytes. It does
// not parse or check the manifest.
func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var sld topLevelManifest
	if tomlErr := toml.Unmarshal(tomlData, &sld); tomlErr != nil {
		return sld, tomlErr
	}

	if strings.ToUpper(sld.Format) != "STERLING" {
		return sld, fmt.Errorf("in header: 'format' key must exist and be set to 'STERLING'")
	}
	if strings.ToUpper(sld.Type) != "MANIFEST" {
		return sld, fmt.Errorf("in header: 'type' must exist and be set to 'MANIFEST'")
	}

	return sld, nil
}
