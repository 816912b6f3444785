package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"time"

	"github.com/dekarrin/sterling/internal/sld"
	"github.com/dekarrin/sterling/server/dao"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("the supplied username/password combination is incorrect")
	ErrPermissions    = errors.New("you don't have permission to do that")
	ErrNotFound       = errors.New("the requested entity could not be found")
	ErrAlreadyExists  = errors.New("resource with same identifying information already exists")
	ErrDB             = errors.New("an error occured with the DB")
	ErrBadArgument    = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal  = errors.New("malformed data in request")
)

// server:
//  X POST   /login            - accepts user and password and returns a jwt.
//  X DELETE /login/{id}       - ends user authentication session and destroyes the jwt.
//  X POST   /tokens           - refreshes the token without requiring credentials (requires auth)
//  X POST   /users            - create a new user account (auth required)
//  X GET    /users            - get all users (auth required)
//  X GET    /users/{id}       - get info on a user (auth required)
//  X PATCH  /users/{id}       - update a user (auth required)
//  X DELETE /users/{id}       - delete a user (auth required)
//  X GET    /languages        - list all registered languages (auth not required)
//  X GET    /languages/{name} - get word list info for a language (auth not required)
//  X POST   /tokenize         - tokenize source text with a language or saved profile
//  X POST   /profiles         - save a named tokenization profile (auth required)
//  X GET    /profiles         - get all profiles of the logged-in user (auth required)
//  X GET    /profiles/{id}    - get a profile (auth required)
//  X PUT    /profiles/{id}    - replace a profile (auth required)
//  X DELETE /profiles/{id}    - delete a profile (auth required)
//  X GET    /info             - get version info on the server itself.
//

// SterlingServer is an HTTP REST server that provides tokenization of source
// text and associated resources. The zero-value of a SterlingServer should not
// be used directly; call New() to get one ready for use.
type SterlingServer struct {
	srv           http.Handler
	db            dao.Store
	unauthedDelay time.Duration
	jwtSecret     []byte
}

// New creates a new SterlingServer from the given config. If the config names
// a language pack file, its language definitions are loaded and registered
// before the first request is served.
func New(cfg Config) (SterlingServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return SterlingServer{}, fmt.Errorf("config: %w", err)
	}

	sts := SterlingServer{
		jwtSecret:     cfg.TokenSecret,
		unauthedDelay: cfg.UnauthDelay(),
	}

	var err error
	sts.db, err = cfg.DB.Connect()
	if err != nil {
		return sts, err
	}

	if cfg.LanguagePackFile != "" {
		langs, err := sld.RegisterPack(cfg.LanguagePackFile)
		if err != nil {
			return sts, fmt.Errorf("load language pack: %w", err)
		}
		log.Printf("INFO  Loaded %d language(s) from %s", len(langs), cfg.LanguagePackFile)
	}

	sts.srv = sts.newRouter()

	return sts, nil
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost". If
// port is less than 1, it will default to 8080.
func (sts SterlingServer) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, sts.srv))
}

// Login verifies the provided username and password against the existing user
// in persistence and returns that user if they match. Returns the user entity
// from the persistence layer that the username and password are valid for.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the credentials do not match
// a user or if the password is incorrect, it will match ErrBadCredentials. If
// the error occured due to an unexpected problem with the DB, it will match
// ErrDB.
func (sts SterlingServer) Login(ctx context.Context, username string, password string) (dao.User, error) {
	user, err := sts.db.Users().GetByUsername(ctx, username)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, ErrBadCredentials
		}
		return dao.User{}, wrapDBError(err)
	}

	// verify password
	bcryptHash, err := base64.StdEncoding.DecodeString(user.Password)
	if err != nil {
		return dao.User{}, err
	}

	err = bcrypt.CompareHashAndPassword(bcryptHash, []byte(password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return dao.User{}, ErrBadCredentials
		}
		return dao.User{}, wrapDBError(err)
	}

	user.LastLoginTime = time.Now()
	user, err = sts.db.Users().Update(ctx, user.ID, user)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	return user, nil
}

// Logout marks the user with the given ID as having logged out, invalidating
// any login that may be active. Returns the user entity that was logged out.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the user doesn't exist, it
// will match ErrNotFound.  If the error occured due to an unexpected problem
// with the DB, it will match ErrDB.
func (sts SterlingServer) Logout(ctx context.Context, who uuid.UUID) (dao.User, error) {
	existing, err := sts.db.Users().GetByID(ctx, who)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, ErrNotFound
		}
		return dao.User{}, newError("could not retrieve user", err, ErrDB)
	}

	existing.LastLogoutTime = time.Now()

	updated, err := sts.db.Users().Update(ctx, existing.ID, existing)
	if err != nil {
		return dao.User{}, newError("could not update user", err, ErrDB)
	}

	return updated, nil
}

// DeleteUser deletes the user with the given ID. It returns the deleted user
// just after they were deleted.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no user with that username
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if there is an issue with
// one of the arguments, it will match ErrBadArgument.
func (sts SterlingServer) DeleteUser(ctx context.Context, id string) (dao.User, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.User{}, newError("ID is not valid", ErrBadArgument)
	}

	user, err := sts.db.Users().Delete(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, ErrNotFound
		}
		return dao.User{}, newError("could not delete user", err, ErrDB)
	}

	return user, nil
}

// GetUser returns the user with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no user with that ID exists,
// it will match ErrNotFound. If the error occured due to an unexpected problem
// with the DB, it will match ErrDB. Finally, if there is an issue with one of
// the arguments, it will match ErrBadArgument.
func (sts SterlingServer) GetUser(ctx context.Context, id string) (dao.User, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.User{}, newError("ID is not valid", ErrBadArgument)
	}

	user, err := sts.db.Users().GetByID(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, ErrNotFound
		}
		return dao.User{}, newError("could not get user", err, ErrDB)
	}

	return user, nil
}

// GetAllUsers returns all users currently in persistence.
func (sts SterlingServer) GetAllUsers(ctx context.Context) ([]dao.User, error) {
	users, err := sts.db.Users().GetAll(ctx)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return users, nil
}

// UpdatePassword sets the password of the user with the given ID to the new
// password. The new password cannot be empty. Returns the updated user.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no user with the given ID
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if one of the arguments is
// invalid, it will match ErrBadArgument.
func (sts SterlingServer) UpdatePassword(ctx context.Context, id, password string) (dao.User, error) {
	if password == "" {
		return dao.User{}, newError("password cannot be empty", ErrBadArgument)
	}
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.User{}, newError("ID is not valid", ErrBadArgument)
	}

	existing, err := sts.db.Users().GetByID(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, newError("no user with that ID exists", ErrNotFound)
		}
		return dao.User{}, wrapDBError(err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		if err == bcrypt.ErrPasswordTooLong {
			return dao.User{}, newError("password is too long", err, ErrBadArgument)
		} else {
			return dao.User{}, newError("password could not be encrypted", err)
		}
	}

	storedPass := base64.StdEncoding.EncodeToString(passHash)

	existing.Password = storedPass

	updated, err := sts.db.Users().Update(ctx, uuidID, existing)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, newError("no user with that ID exists", ErrNotFound)
		}
		return dao.User{}, newError("could not update user", err, ErrDB)
	}

	return updated, nil
}

// UpdateUser sets the properties of the user with the given ID to the
// properties in the given user. All the given properties of the user will
// overwrite the existing ones. Returns the updated user.
//
// This function cannot be used to update the password. Use UpdatePassword for
// that.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If a user with that username or
// ID (if they are changing) is already present, it will match ErrAlreadyExists.
// If no user with the given ID exists, it will match ErrNotFound. If the error
// occured due to an unexpected problem with the DB, it will match ErrDB.
// Finally, if one of the arguments is invalid, it will match ErrBadArgument.
func (sts SterlingServer) UpdateUser(ctx context.Context, curID, newID, username, email string, role dao.Role) (dao.User, error) {
	var err error

	if username == "" {
		return dao.User{}, newError("username cannot be blank", ErrBadArgument)
	}

	var storedEmail *mail.Address
	if email != "" {
		storedEmail, err = mail.ParseAddress(email)
		if err != nil {
			return dao.User{}, newError("email is not valid", err, ErrBadArgument)
		}
	}

	uuidCurID, err := uuid.Parse(curID)
	if err != nil {
		return dao.User{}, newError("current ID is not valid", ErrBadArgument)
	}
	uuidNewID, err := uuid.Parse(newID)
	if err != nil {
		return dao.User{}, newError("new ID is not valid", ErrBadArgument)
	}

	daoUser, err := sts.db.Users().GetByID(ctx, uuidCurID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, newError("user not found", ErrNotFound)
		}
		return dao.User{}, wrapDBError(err)
	}

	if curID != newID {
		_, err := sts.db.Users().GetByID(ctx, uuidNewID)
		if err == nil {
			return dao.User{}, newError("a user with that ID already exists", ErrAlreadyExists)
		} else if err != dao.ErrNotFound {
			return dao.User{}, wrapDBError(err)
		}
	}
	if daoUser.Username != username {
		_, err := sts.db.Users().GetByUsername(ctx, username)
		if err == nil {
			return dao.User{}, newError("a user with that username already exists", ErrAlreadyExists)
		} else if err != dao.ErrNotFound {
			return dao.User{}, wrapDBError(err)
		}
	}

	daoUser.Email = storedEmail
	daoUser.ID = uuidNewID
	daoUser.Username = username
	daoUser.Role = role

	updatedUser, err := sts.db.Users().Update(ctx, uuidCurID, daoUser)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.User{}, newError("a user with that ID/username already exists", ErrAlreadyExists)
		} else if err == dao.ErrNotFound {
			return dao.User{}, newError("user not found", ErrNotFound)
		}
		return dao.User{}, wrapDBError(err)
	}

	return updatedUser, nil
}

// CreateUser creates a new user with the given username, password, and email
// combo. Returns the newly-created user as it exists after creation.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If a user with that username is
// already present, it will match ErrAlreadyExists. If the error occured due to
// an unexpected problem with the DB, it will match ErrDB. Finally, if one of
// the arguments is invalid, it will match ErrBadArgument.
func (sts SterlingServer) CreateUser(ctx context.Context, username, password, email string, role dao.Role) (dao.User, error) {
	var err error
	if username == "" {
		return dao.User{}, newError("username cannot be blank", ErrBadArgument)
	}
	if password == "" {
		return dao.User{}, newError("password cannot be blank", ErrBadArgument)
	}

	var storedEmail *mail.Address
	if email != "" {
		storedEmail, err = mail.ParseAddress(email)
		if err != nil {
			return dao.User{}, newError("email is not valid", err, ErrBadArgument)
		}
	}

	_, err = sts.db.Users().GetByUsername(ctx, username)
	if err == nil {
		return dao.User{}, newError("a user with that username already exists", ErrAlreadyExists)
	} else if err != dao.ErrNotFound {
		return dao.User{}, wrapDBError(err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		if err == bcrypt.ErrPasswordTooLong {
			return dao.User{}, newError("password is too long", err, ErrBadArgument)
		} else {
			return dao.User{}, newError("password could not be encrypted", err)
		}
	}

	storedPass := base64.StdEncoding.EncodeToString(passHash)

	newUser := dao.User{
		Username: username,
		Password: storedPass,
		Email:    storedEmail,
		Role:     role,
	}

	user, err := sts.db.Users().Create(ctx, newUser)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.User{}, ErrAlreadyExists
		}
		return dao.User{}, newError("could not create user", err, ErrDB)
	}

	return user, nil
}

// Error is an error in the server.
type Error struct {
	msg   string
	cause []error
}

func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

func (e Error) Is(target error) bool {
	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

func wrapDBError(err error) Error {
	return Error{
		cause: []error{err, ErrDB},
	}
}

func newError(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
