// Package inmem provides in-memory implementations of the Sterling server
// data store. It is intended for tests and for running a server without any
// persistence on disk; all data is lost when the store is closed.
package inmem

import (
	"fmt"

	"github.com/dekarrin/sterling/server/dao"
)

type store struct {
	users    *InMemoryUsersRepository
	profiles *InMemoryProfilesRepository
}

func NewDatastore() dao.Store {
	return &store{
		users:    NewUsersRepository(),
		profiles: NewProfilesRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Profiles() dao.ProfileRepository {
	return s.profiles
}

func (s *store) Close() error {
	var err error
	var nextErr error

	nextErr = s.users.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		}
	}
	nextErr = s.profiles.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		}
	}

	return err
}
