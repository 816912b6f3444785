package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dekarrin/sterling/server/dao"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) SterlingServer {
	t.Helper()

	cfg := Config{
		TokenSecret:       []byte("test-secret-test-secret-test-secret!"),
		DB:                Database{Type: DatabaseInMemory},
		UnauthDelayMillis: -1,
	}

	sts, err := New(cfg)
	if err != nil {
		t.Fatalf("could not create server: %v", err)
	}

	return sts
}

func Test_CreateUserAndLogin(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	created, err := sts.CreateUser(ctx, "vriska", "8888888888888888", "vriska@example.com", dao.Normal)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("vriska", created.Username)
	assert.NotEqual("8888888888888888", created.Password, "password must not be stored in plaintext")

	// correct credentials
	loggedIn, err := sts.Login(ctx, "vriska", "8888888888888888")
	assert.NoError(err)
	assert.Equal(created.ID, loggedIn.ID)

	// wrong password
	_, err = sts.Login(ctx, "vriska", "wrong")
	assert.ErrorIs(err, ErrBadCredentials)

	// no such user
	_, err = sts.Login(ctx, "aradia", "8888888888888888")
	assert.ErrorIs(err, ErrBadCredentials)

	// duplicate username
	_, err = sts.CreateUser(ctx, "vriska", "password", "", dao.Normal)
	assert.ErrorIs(err, ErrAlreadyExists)
}

func Test_CreateUser_validation(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	_, err := sts.CreateUser(ctx, "", "password", "", dao.Normal)
	assert.ErrorIs(err, ErrBadArgument)

	_, err = sts.CreateUser(ctx, "someone", "", "", dao.Normal)
	assert.ErrorIs(err, ErrBadArgument)

	_, err = sts.CreateUser(ctx, "someone", "password", "not-an-email-at-all@", dao.Normal)
	assert.ErrorIs(err, ErrBadArgument)
}

func Test_Logout_invalidatesToken(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	user, err := sts.CreateUser(ctx, "nepeta", "pouncellor", "", dao.Normal)
	if !assert.NoError(err) {
		return
	}

	tok, err := sts.generateJWT(user)
	if !assert.NoError(err) {
		return
	}

	// token is good before logout
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	gotUser, err := sts.requireJWT(ctx, req)
	assert.NoError(err)
	assert.Equal(user.ID, gotUser.ID)

	_, err = sts.Logout(ctx, user.ID)
	if !assert.NoError(err) {
		return
	}

	// logout rotated the signing key, token is no longer accepted
	_, err = sts.requireJWT(ctx, req)
	assert.Error(err)
}

func Test_generateJWT_claims(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	user, err := sts.CreateUser(ctx, "terezi", "r3dgl4r3", "", dao.Admin)
	if !assert.NoError(err) {
		return
	}

	tok, err := sts.generateJWT(user)
	if !assert.NoError(err) {
		return
	}

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(tokenIssuer, claims["iss"])
	assert.Equal(user.ID.String(), claims["sub"])
	assert.Equal(dao.Admin.String(), claims["role"])

	iat, ok := claims["iat"].(float64)
	assert.True(ok)
	exp, ok := claims["exp"].(float64)
	assert.True(ok)
	assert.Equal(tokenTTL, time.Duration(exp-iat)*time.Second)
}

func Test_UpdatePassword(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	user, err := sts.CreateUser(ctx, "kanaya", "chainsaw", "", dao.Normal)
	if !assert.NoError(err) {
		return
	}

	_, err = sts.UpdatePassword(ctx, user.ID.String(), "")
	assert.ErrorIs(err, ErrBadArgument)

	_, err = sts.UpdatePassword(ctx, user.ID.String(), "lipstick")
	assert.NoError(err)

	_, err = sts.Login(ctx, "kanaya", "chainsaw")
	assert.ErrorIs(err, ErrBadCredentials)

	_, err = sts.Login(ctx, "kanaya", "lipstick")
	assert.NoError(err)
}

func Test_Profiles(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	user, err := sts.CreateUser(ctx, "sollux", "bifurcate", "", dao.Normal)
	if !assert.NoError(err) {
		return
	}

	// unknown language is rejected
	_, err = sts.CreateProfile(ctx, user.ID, ProfileModel{Name: "notes", Language: "no-such-language"})
	assert.ErrorIs(err, ErrBadArgument)

	// blank name is rejected
	_, err = sts.CreateProfile(ctx, user.ID, ProfileModel{Language: "cstyle"})
	assert.ErrorIs(err, ErrBadArgument)

	prof, err := sts.CreateProfile(ctx, user.ID, ProfileModel{
		Name:      "c-ish",
		Language:  "cstyle",
		WordLists: []string{"if else for while", "int char"},
	})
	if !assert.NoError(err) {
		return
	}
	assert.Equal(user.ID, prof.UserID)

	// same name for same user collides
	_, err = sts.CreateProfile(ctx, user.ID, ProfileModel{Name: "c-ish", Language: "null"})
	assert.ErrorIs(err, ErrAlreadyExists)

	profs, err := sts.GetUserProfiles(ctx, user.ID)
	assert.NoError(err)
	assert.Len(profs, 1)

	updated, err := sts.UpdateProfile(ctx, prof.ID.String(), ProfileModel{Name: "c-ish", Language: "null"})
	assert.NoError(err)
	assert.Equal("null", updated.Language)

	_, err = sts.DeleteProfile(ctx, prof.ID.String())
	assert.NoError(err)

	_, err = sts.GetProfile(ctx, prof.ID.String())
	assert.ErrorIs(err, ErrNotFound)
}

func Test_Tokenize(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	// neither language nor profile
	_, err := sts.Tokenize(ctx, TokenizeRequest{Text: "int x;"})
	assert.ErrorIs(err, ErrBadArgument)

	// both language and profile
	_, err = sts.Tokenize(ctx, TokenizeRequest{Text: "int x;", Language: "null", Profile: "something"})
	assert.ErrorIs(err, ErrBadArgument)

	// unknown language
	_, err = sts.Tokenize(ctx, TokenizeRequest{Text: "int x;", Language: "no-such-language"})
	assert.ErrorIs(err, ErrBadArgument)

	// the null lexer emits the whole text as one token
	resp, err := sts.Tokenize(ctx, TokenizeRequest{Text: "int x;", Language: "null"})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("null", resp.Language)
	if assert.Len(resp.Tokens, 1) {
		assert.Equal("int x;", resp.Tokens[0].Text)
	}
}

func Test_Tokenize_withProfile(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	user, err := sts.CreateUser(ctx, "terezi", "legislacerator", "", dao.Normal)
	if !assert.NoError(err) {
		return
	}

	prof, err := sts.CreateProfile(ctx, user.ID, ProfileModel{Name: "plain", Language: "null"})
	if !assert.NoError(err) {
		return
	}

	resp, err := sts.Tokenize(ctx, TokenizeRequest{Text: "H3H3H3", Profile: prof.ID.String()})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("null", resp.Language)
	assert.Len(resp.Tokens, 1)
}

func Test_LanguageInfo(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)

	_, err := sts.LanguageInfo("no-such-language")
	assert.ErrorIs(err, ErrNotFound)

	m, err := sts.LanguageInfo("cstyle")
	if !assert.NoError(err) {
		return
	}
	assert.Equal("cstyle", m.Name)
	assert.Equal(2, m.NumWordLists)
	assert.Len(m.WordListDescriptions, 2)

	names := map[string]bool{}
	for _, lm := range sts.Languages() {
		names[lm.Name] = true
	}
	assert.True(names["null"])
	assert.True(names["cstyle"])
}

func Test_HTTP_info(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	w := httptest.NewRecorder()

	sts.srv.ServeHTTP(w, req)

	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}

	var info InfoResponse
	err := json.Unmarshal(w.Body.Bytes(), &info)
	assert.NoError(err)
	assert.NotEmpty(info.Version)
	assert.Greater(info.NumLanguages, 0)
}

func Test_HTTP_loginAndTokenize(t *testing.T) {
	assert := assert.New(t)
	sts := newTestServer(t)
	ctx := context.Background()

	_, err := sts.CreateUser(ctx, "gamzee", "miraclemodus", "", dao.Normal)
	if !assert.NoError(err) {
		return
	}

	// bad credentials get a 401
	body := `{"username": "gamzee", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	sts.srv.ServeHTTP(w, req)
	assert.Equal(http.StatusUnauthorized, w.Code)

	// good credentials get a token
	body = `{"username": "gamzee", "password": "miraclemodus"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	sts.srv.ServeHTTP(w, req)
	if !assert.Equal(http.StatusCreated, w.Code) {
		return
	}

	var loginResp LoginResponse
	if !assert.NoError(json.Unmarshal(w.Body.Bytes(), &loginResp)) {
		return
	}
	assert.NotEmpty(loginResp.Token)

	// tokenize does not require auth when given a language directly
	body = `{"text": "honk :o)", "language": "null"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/tokenize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	sts.srv.ServeHTTP(w, req)
	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}

	var tokResp TokenizeResponse
	if !assert.NoError(json.Unmarshal(w.Body.Bytes(), &tokResp)) {
		return
	}
	assert.Len(tokResp.Tokens, 1)
	assert.Equal("honk :o)", tokResp.Tokens[0].Text)
}
