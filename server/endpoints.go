package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dekarrin/sterling/internal/version"
	"github.com/dekarrin/sterling/server/dao"
	"github.com/google/uuid"
)

// POST /login: create a new login with token
func (sts SterlingServer) doEndpoint_Login_POST(req *http.Request) EndpointResult {
	loginData := LoginRequest{}
	err := parseJSON(req, &loginData)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	if loginData.Username == "" {
		return jsonBadRequest("username: property is empty or missing from request", "empty user")
	}
	if loginData.Password == "" {
		return jsonBadRequest("password: property is empty or missing from request", "empty password")
	}

	user, err := sts.Login(req.Context(), loginData.Username, loginData.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			return jsonUnauthorized(err.Error())
		} else {
			return jsonInternalServerError(err.Error())
		}
	}

	// password is valid, generate token for user and return it.
	tok, err := sts.generateJWT(user)
	if err != nil {
		return jsonInternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{
		Token:  tok,
		UserID: user.ID.String(),
	}
	return jsonCreated(resp, "user '"+user.Username+"' successfully logged in")
}

// POST /tokens: create a new token for self (auth required)
func (sts SterlingServer) doEndpoint_Token_POST(req *http.Request) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	tok, err := sts.generateJWT(user)
	if err != nil {
		return jsonInternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{
		Token:  tok,
		UserID: user.ID.String(),
	}
	return jsonCreated(resp, "user '"+user.Username+"' successfully created new token")
}

// DELETE /login/{id}: remove a login for some user (log out). Requires auth for
// access at all. Requires auth by user with role Admin to log out anybody but
// self.
func (sts SterlingServer) doEndpoint_LoginID_DELETE(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	// is the user trying to delete someone else's login? they'd betta be the
	// admin if so!
	if id != user.ID && user.Role != dao.Admin {
		var otherUserStr string
		otherUser, err := sts.db.Users().GetByID(req.Context(), id)
		// if there was another user, find out now
		if err != nil {
			otherUserStr = id.String()
		} else {
			otherUserStr = "'" + otherUser.Username + "'"
		}

		return jsonForbidden("user '%s' (role %s) logout of user %s: forbidden", user.Username, user.Role, otherUserStr)
	}

	loggedOutUser, err := sts.Logout(req.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not log out user: " + err.Error())
	}

	var otherStr string
	if id != user.ID {
		otherStr = "user '" + loggedOutUser.Username + "'"
	} else {
		otherStr = "self"
	}

	return jsonNoContent("user '%s' successfully logged out %s", user.Username, otherStr)
}

// POST /users: create a new user (admin auth required)
func (sts SterlingServer) doEndpoint_Users_POST(req *http.Request) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	if user.Role != dao.Admin {
		return jsonForbidden()
	}

	var createUser UserModel
	err = parseJSON(req, &createUser)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}
	if createUser.Username == "" {
		return jsonBadRequest("username: property is empty or missing from request", "empty username")
	}
	if createUser.Password == "" {
		return jsonBadRequest("password: property is empty or missing from request", "empty password")
	}

	role := dao.Unverified
	if createUser.Role != "" {
		role, err = dao.ParseRole(createUser.Role)
		if err != nil {
			return jsonBadRequest("role: "+err.Error(), "role: %s", err.Error())
		}
	}

	newUser, err := sts.CreateUser(req.Context(), createUser.Username, createUser.Password, createUser.Email, role)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return jsonConflict("User with that username already exists", "user '%s' already exists", createUser.Username)
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		} else {
			return jsonInternalServerError(err.Error())
		}
	}

	resp := daoUserToModel(newUser)

	return jsonCreated(resp, "user '%s' (%s) created", resp.Username, resp.ID)
}

// GET /users: get all users (auth required)
func (sts SterlingServer) doEndpoint_Users_GET(req *http.Request) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	users, err := sts.GetAllUsers(req.Context())
	if err != nil {
		return jsonInternalServerError(err.Error())
	}

	resp := make([]UserModel, len(users))
	for i := range users {
		resp[i] = daoUserToModel(users[i])
	}

	return jsonOK(resp, "user '%s' got all users", user.Username)
}

// GET /users/{id}: get a user (auth required)
func (sts SterlingServer) doEndpoint_UsersID_GET(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	gotUser, err := sts.GetUser(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not get user: " + err.Error())
	}

	return jsonOK(daoUserToModel(gotUser), "user '%s' got user %s", user.Username, id)
}

// PATCH /users/{id}: update a user. Requires admin auth for any but own ID;
// role changes always require admin auth.
func (sts SterlingServer) doEndpoint_UsersID_PATCH(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	if id != user.ID && user.Role != dao.Admin {
		return jsonForbidden("user '%s' (role %s) update user %s: forbidden", user.Username, user.Role, id)
	}

	var update UserUpdateRequest
	err = parseJSON(req, &update)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	existing, err := sts.GetUser(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not get user: " + err.Error())
	}

	newID := existing.ID.String()
	newUsername := existing.Username
	newEmail := ""
	if existing.Email != nil {
		newEmail = existing.Email.Address
	}
	newRole := existing.Role

	if update.ID.Update {
		newID = update.ID.Value
	}
	if update.Username.Update {
		newUsername = update.Username.Value
	}
	if update.Email.Update {
		newEmail = update.Email.Value
	}
	if update.Role.Update {
		if user.Role != dao.Admin {
			return jsonForbidden("user '%s' (role %s) change role of user %s: forbidden", user.Username, user.Role, id)
		}
		newRole, err = dao.ParseRole(update.Role.Value)
		if err != nil {
			return jsonBadRequest("role: "+err.Error(), "role: %s", err.Error())
		}
	}

	updated, err := sts.UpdateUser(req.Context(), id.String(), newID, newUsername, newEmail, newRole)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return jsonConflict("User with that ID/username already exists", "user %s already exists", newID)
		} else if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not update user: " + err.Error())
	}

	if update.Password.Update {
		updated, err = sts.UpdatePassword(req.Context(), updated.ID.String(), update.Password.Value)
		if err != nil {
			if errors.Is(err, ErrBadArgument) {
				return jsonBadRequest(err.Error(), err.Error())
			}
			return jsonInternalServerError("could not update password: " + err.Error())
		}
	}

	return jsonOK(daoUserToModel(updated), "user '%s' updated user %s", user.Username, id)
}

// DELETE /users/{id}: delete a user. Requires admin auth for any but own ID.
func (sts SterlingServer) doEndpoint_UsersID_DELETE(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	// is the user trying to delete someone else? they'd betta be the admin if so!
	if id != user.ID && user.Role != dao.Admin {
		var otherUserStr string
		otherUser, err := sts.db.Users().GetByID(req.Context(), id)
		// if there was another user, find out now
		if err != nil {
			otherUserStr = id.String()
		} else {
			otherUserStr = "'" + otherUser.Username + "'"
		}

		return jsonForbidden("user '%s' (role %s) delete user %s: forbidden", user.Username, user.Role, otherUserStr)
	}

	deletedUser, err := sts.DeleteUser(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not delete user: " + err.Error())
	}

	var otherStr string
	if id != user.ID {
		otherStr = "user '" + deletedUser.Username + "'"
	} else {
		otherStr = "self"
	}

	return jsonNoContent("user '%s' successfully deleted %s", user.Username, otherStr)
}

// GET /languages: list every registered language (no auth required)
func (sts SterlingServer) doEndpoint_Languages_GET(req *http.Request) EndpointResult {
	langs := sts.Languages()
	for i := range langs {
		langs[i].URI = "/api/v1/languages/" + langs[i].Name
	}

	return jsonOK(langs, "listed %d language(s)", len(langs))
}

// GET /languages/{name}: get word list info on one language (no auth required)
func (sts SterlingServer) doEndpoint_LanguagesName_GET(req *http.Request, name string) EndpointResult {
	lang, err := sts.LanguageInfo(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not get language: " + err.Error())
	}

	lang.URI = "/api/v1/languages/" + lang.Name

	return jsonOK(lang, "got language '%s'", name)
}

// POST /tokenize: tokenize source text (no auth required, unless a profile is
// named, in which case the profile must belong to the authenticated user)
func (sts SterlingServer) doEndpoint_Tokenize_POST(req *http.Request) EndpointResult {
	var tokReq TokenizeRequest
	err := parseJSON(req, &tokReq)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	if tokReq.Profile != "" {
		user, err := sts.requireJWT(req.Context(), req)
		if err != nil {
			return jsonUnauthorized(err.Error())
		}

		prof, err := sts.GetProfile(req.Context(), tokReq.Profile)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return jsonNotFound()
			} else if errors.Is(err, ErrBadArgument) {
				return jsonBadRequest(err.Error(), err.Error())
			}
			return jsonInternalServerError("could not get profile: " + err.Error())
		}

		if prof.UserID != user.ID && user.Role != dao.Admin {
			return jsonForbidden("user '%s' (role %s) tokenize with profile %s: forbidden", user.Username, user.Role, prof.ID)
		}
	}

	resp, err := sts.Tokenize(req.Context(), tokReq)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not tokenize: " + err.Error())
	}

	return jsonOK(resp, "tokenized %d byte(s) as '%s' into %d token(s)", len(tokReq.Text), resp.Language, len(resp.Tokens))
}

// POST /profiles: save a new tokenization profile for self (auth required)
func (sts SterlingServer) doEndpoint_Profiles_POST(req *http.Request) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	var profReq ProfileModel
	err = parseJSON(req, &profReq)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	prof, err := sts.CreateProfile(req.Context(), user.ID, profReq)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return jsonConflict("A profile with that name already exists", "profile '%s' already exists", profReq.Name)
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not create profile: " + err.Error())
	}

	resp := daoProfileToModel(prof)
	resp.URI = "/api/v1/profiles/" + resp.ID

	return jsonCreated(resp, "user '%s' created profile '%s' (%s)", user.Username, prof.Name, prof.ID)
}

// GET /profiles: get all profiles of the logged-in user (auth required)
func (sts SterlingServer) doEndpoint_Profiles_GET(req *http.Request) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	profs, err := sts.GetUserProfiles(req.Context(), user.ID)
	if err != nil {
		return jsonInternalServerError("could not get profiles: " + err.Error())
	}

	resp := make([]ProfileModel, len(profs))
	for i := range profs {
		resp[i] = daoProfileToModel(profs[i])
		resp[i].URI = "/api/v1/profiles/" + resp[i].ID
	}

	return jsonOK(resp, "user '%s' got own profiles", user.Username)
}

// GET /profiles/{id}: get a profile. Requires admin auth for any but own
// profiles.
func (sts SterlingServer) doEndpoint_ProfilesID_GET(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	prof, err := sts.GetProfile(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not get profile: " + err.Error())
	}

	if prof.UserID != user.ID && user.Role != dao.Admin {
		return jsonForbidden("user '%s' (role %s) get profile %s: forbidden", user.Username, user.Role, id)
	}

	resp := daoProfileToModel(prof)
	resp.URI = "/api/v1/profiles/" + resp.ID

	return jsonOK(resp, "user '%s' got profile %s", user.Username, id)
}

// PUT /profiles/{id}: replace a profile. Requires admin auth for any but own
// profiles.
func (sts SterlingServer) doEndpoint_ProfilesID_PUT(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	existing, err := sts.GetProfile(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not get profile: " + err.Error())
	}

	if existing.UserID != user.ID && user.Role != dao.Admin {
		return jsonForbidden("user '%s' (role %s) update profile %s: forbidden", user.Username, user.Role, id)
	}

	var profReq ProfileModel
	err = parseJSON(req, &profReq)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	updated, err := sts.UpdateProfile(req.Context(), id.String(), profReq)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return jsonConflict("A profile with that name already exists", "profile '%s' already exists", profReq.Name)
		} else if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not update profile: " + err.Error())
	}

	resp := daoProfileToModel(updated)
	resp.URI = "/api/v1/profiles/" + resp.ID

	return jsonOK(resp, "user '%s' updated profile %s", user.Username, id)
}

// DELETE /profiles/{id}: delete a profile. Requires admin auth for any but own
// profiles.
func (sts SterlingServer) doEndpoint_ProfilesID_DELETE(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := sts.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	existing, err := sts.GetProfile(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not get profile: " + err.Error())
	}

	if existing.UserID != user.ID && user.Role != dao.Admin {
		return jsonForbidden("user '%s' (role %s) delete profile %s: forbidden", user.Username, user.Role, id)
	}

	_, err = sts.DeleteProfile(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not delete profile: " + err.Error())
	}

	return jsonNoContent("user '%s' deleted profile %s", user.Username, id)
}

// GET /info: get version info (no auth required)
func (sts SterlingServer) doEndpoint_Info_GET(req *http.Request) EndpointResult {
	resp := InfoResponse{
		Version:      version.ServerCurrent,
		NumLanguages: len(sts.Languages()),
	}

	return jsonOK(resp, "version info requested")
}

func daoUserToModel(u dao.User) UserModel {
	m := UserModel{
		URI:      "/api/v1/users/" + u.ID.String(),
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role.String(),
	}

	if u.Email != nil {
		m.Email = u.Email.String()
	}

	return m
}

// v must be a pointer to a type.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return fmt.Errorf("malformed JSON in request")
	}

	return nil
}
