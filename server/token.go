package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/sterling/server/dao"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer = "sterling"
	tokenTTL    = time.Hour
)

// signingKey derives the HMAC key a user's tokens are signed with. It
// incorporates the user's password hash and last logout time, so changing
// either immediately invalidates all outstanding tokens for that user.
func (sts SterlingServer) signingKey(u dao.User) []byte {
	var key []byte
	key = append(key, sts.jwtSecret...)
	key = append(key, []byte(u.Password)...)
	key = append(key, []byte(fmt.Sprintf("%d", u.LastLogoutTime.Unix()))...)
	return key
}

// requireJWT checks the Authorization header of the request for a bearer
// token and validates it, returning the user the token was issued for.
func (sts SterlingServer) requireJWT(ctx context.Context, req *http.Request) (dao.User, error) {
	var user dao.User

	tok, err := getJWT(req)
	if err != nil {
		return dao.User{}, err
	}

	_, err = jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		// who is the user? we need this for further verification
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		user, err = sts.db.Users().GetByID(ctx, id)
		if err != nil {
			if err == dao.ErrNotFound {
				return nil, fmt.Errorf("subject does not exist")
			} else {
				return nil, fmt.Errorf("subject could not be validated")
			}
		}

		return sts.signingKey(user), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(tokenIssuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return dao.User{}, err
	}

	return user, nil
}

func getJWT(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))

	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	token := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return token, nil
}

// generateJWT creates a signed token for the given user, valid for tokenTTL.
// The user's role is carried as a claim so clients can show or hide admin
// features without a second request; authorization checks always reload the
// user and never trust the claim.
func (sts SterlingServer) generateJWT(u dao.User) (string, error) {
	now := time.Now()
	claims := &jwt.MapClaims{
		"iss":  tokenIssuer,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
		"sub":  u.ID.String(),
		"role": u.Role.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokStr, err := tok.SignedString(sts.signingKey(u))
	if err != nil {
		return "", err
	}
	return tokStr, nil
}
