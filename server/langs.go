package server

import (
	"context"
	"errors"

	"github.com/dekarrin/sterling"
	"github.com/dekarrin/sterling/lexers"
	"github.com/dekarrin/sterling/server/dao"
)

// Languages returns info on every language lexer currently registered. The
// returned models do not have their URI field set; that is the concern of the
// HTTP layer.
func (sts SterlingServer) Languages() []LanguageModel {
	names := lexers.Names()

	models := make([]LanguageModel, 0, len(names))
	for _, name := range names {
		m, err := sts.LanguageInfo(name)
		if err != nil {
			// registry changed between Names and Lookup; skip it
			continue
		}
		models = append(models, m)
	}

	return models
}

// LanguageInfo returns info on the language with the given name. Lexers that
// cannot report their word list count get a NumWordLists of -1.
//
// The returned error, if non-nil, will match ErrNotFound for calls to
// errors.Is if no language with that name is registered.
func (sts SterlingServer) LanguageInfo(name string) (LanguageModel, error) {
	st, err := sterling.NewStyler(name)
	if err != nil {
		return LanguageModel{}, newError("no language named "+name+" is registered", ErrNotFound)
	}

	m := LanguageModel{Name: name}

	m.NumWordLists, err = st.NumWordLists()
	if err != nil {
		m.NumWordLists = -1
		return m, nil
	}

	m.WordListDescriptions, err = st.WordListDescriptions()
	if err != nil {
		return m, nil
	}

	return m, nil
}

// Tokenize runs the requested text through a lexer and returns the resulting
// tokens. The lexer is selected either directly by language name or by naming
// a saved profile; exactly one of the two must be given. When a profile is
// used, word lists and properties given in the request override the ones
// saved in the profile.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the named profile does not
// exist, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if one of the arguments
// is invalid, including the text not being decodable in its encoding, it will
// match ErrBadArgument.
func (sts SterlingServer) Tokenize(ctx context.Context, req TokenizeRequest) (TokenizeResponse, error) {
	if (req.Language == "") == (req.Profile == "") {
		return TokenizeResponse{}, newError("exactly one of language or profile must be given", ErrBadArgument)
	}

	language := req.Language
	wordLists := req.WordLists
	properties := req.Properties

	if req.Profile != "" {
		prof, err := sts.GetProfile(ctx, req.Profile)
		if err != nil {
			return TokenizeResponse{}, err
		}

		language = prof.Language
		if len(wordLists) == 0 {
			wordLists = prof.WordLists
		}
		if len(properties) == 0 {
			properties = prof.Properties
		}
	}

	st, err := sterling.NewStyler(language)
	if err != nil {
		return TokenizeResponse{}, newError("no language named "+language+" is registered", ErrBadArgument)
	}

	props, err := sterling.NewPropertySet(properties)
	if err != nil {
		return TokenizeResponse{}, newError("properties are not valid", err, ErrBadArgument)
	}

	toks, err := st.TokenizeByStyle([]byte(req.Text), req.Encoding, sterling.WordListsOf(wordLists...), props, nil)
	if err != nil {
		if errors.Is(err, sterling.ErrBadArgument) || errors.Is(err, sterling.ErrEncoding) {
			return TokenizeResponse{}, newError("could not tokenize text", err, ErrBadArgument)
		}
		return TokenizeResponse{}, newError("could not tokenize text", err)
	}

	return TokenizeResponse{
		Language: language,
		Tokens:   toks,
	}, nil
}

// daoProfileToModel converts a stored profile to its client representation.
// The URI field is left unset.
func daoProfileToModel(p dao.Profile) ProfileModel {
	return ProfileModel{
		ID:         p.ID.String(),
		Name:       p.Name,
		Language:   p.Language,
		WordLists:  p.WordLists,
		Properties: p.Properties,
	}
}
