// Package dao provides data access objects for use in the Sterling server.
package dao

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// Store is a connection to the persistence layer holding all the
// repositories.
type Store interface {
	Users() UserRepository
	Profiles() ProfileRepository

	Close() error
}

type UserRepository interface {

	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)

	Close() error
}

// ProfileRepository holds stored tokenization profiles. A profile bundles a
// language with the word lists and properties to pass on each call, so
// clients can tokenize with a single reference instead of re-sending the
// whole setup every time.
type ProfileRepository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetAll(ctx context.Context) ([]Profile, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	Update(ctx context.Context, id uuid.UUID, p Profile) (Profile, error)
	Delete(ctx context.Context, id uuid.UUID) (Profile, error)

	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID
	Username       string
	Password       string
	Email          *mail.Address
	Role           Role
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time
}

// Profile is a stored tokenization profile. The word lists and properties
// are applied along with the named language whenever the profile is used for
// a tokenization call.
type Profile struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Language   string
	WordLists  []string
	Properties map[string]string
	Created    time.Time
	Modified   time.Time
}

// ProfileSettings is the persisted portion of a Profile that is stored as a
// single binary payload rather than as individual columns.
type ProfileSettings struct {
	Language   string
	WordLists  []string
	Properties map[string]string
}

// MarshalBinary converts ps into a slice of bytes that can be decoded with
// UnmarshalBinary. Properties are flattened to a key, value, key, value
// sequence in sorted key order so the encoding is deterministic.
func (ps ProfileSettings) MarshalBinary() ([]byte, error) {
	var enc []byte

	enc = append(enc, rezi.EncString(ps.Language)...)
	enc = append(enc, rezi.EncSliceString(ps.WordLists)...)

	keys := make([]string, 0, len(ps.Properties))
	for k := range ps.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flat := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		flat = append(flat, k, ps.Properties[k])
	}
	enc = append(enc, rezi.EncSliceString(flat)...)

	return enc, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into ps.
// All of ps's fields will be replaced by the fields decoded from data.
func (ps *ProfileSettings) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	ps.Language, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("language: %w", err)
	}
	data = data[n:]

	ps.WordLists, n, err = rezi.DecSliceString(data)
	if err != nil {
		return fmt.Errorf("word lists: %w", err)
	}
	data = data[n:]

	flat, _, err := rezi.DecSliceString(data)
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	if len(flat)%2 != 0 {
		return fmt.Errorf("properties: flattened list has odd length %d", len(flat))
	}

	ps.Properties = make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		ps.Properties[flat[i]] = flat[i+1]
	}

	return nil
}
