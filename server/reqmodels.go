package server

import "github.com/dekarrin/sterling"

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type UserModel struct {
	URI      string `json:"uri"`
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,"`
	Role     string `json:"role,omitempty"`
}

type UserUpdateRequest struct {
	ID       UpdateString `json:"id,omitempty"`
	Username UpdateString `json:"username,omitempty"`
	Password UpdateString `json:"password,omitempty"`
	Email    UpdateString `json:"email,"`
	Role     UpdateString `json:"role,omitempty"`
}

type UpdateString struct {
	Update bool   `json:"u,omitempty"`
	Value  string `json:"v,omitempty"`
}

type LanguageModel struct {
	URI                  string   `json:"uri"`
	Name                 string   `json:"name"`
	NumWordLists         int      `json:"num_word_lists"`
	WordListDescriptions []string `json:"word_list_descriptions,omitempty"`
}

type ProfileModel struct {
	URI        string            `json:"uri"`
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name"`
	Language   string            `json:"language"`
	WordLists  []string          `json:"word_lists,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

type TokenizeRequest struct {
	// Text is the source text to be tokenized. Exactly one of Language or
	// Profile must be set to select the lexer for it.
	Text       string            `json:"text"`
	Encoding   string            `json:"encoding,omitempty"`
	Language   string            `json:"language,omitempty"`
	Profile    string            `json:"profile,omitempty"`
	WordLists  []string          `json:"word_lists,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

type TokenizeResponse struct {
	Language string           `json:"language"`
	Tokens   []sterling.Token `json:"tokens"`
}

type InfoResponse struct {
	Version      string `json:"version"`
	NumLanguages int    `json:"num_languages"`
}
