package server

import (
	"context"

	"github.com/dekarrin/sterling/lexers"
	"github.com/dekarrin/sterling/server/dao"
	"github.com/google/uuid"
)

// CreateProfile saves a new named tokenization profile for the given user.
// The profile's language must be registered. Returns the newly-created
// profile as it exists after creation.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the user already has a
// profile with that name, it will match ErrAlreadyExists. If the error occured
// due to an unexpected problem with the DB, it will match ErrDB. Finally, if
// one of the arguments is invalid, it will match ErrBadArgument.
func (sts SterlingServer) CreateProfile(ctx context.Context, owner uuid.UUID, p ProfileModel) (dao.Profile, error) {
	if p.Name == "" {
		return dao.Profile{}, newError("profile name cannot be blank", ErrBadArgument)
	}
	if _, err := lexers.Lookup(p.Language); err != nil {
		return dao.Profile{}, newError("no language named "+p.Language+" is registered", ErrBadArgument)
	}

	newProf := dao.Profile{
		UserID:     owner,
		Name:       p.Name,
		Language:   p.Language,
		WordLists:  p.WordLists,
		Properties: p.Properties,
	}

	prof, err := sts.db.Profiles().Create(ctx, newProf)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.Profile{}, newError("a profile with that name already exists", ErrAlreadyExists)
		}
		return dao.Profile{}, newError("could not create profile", err, ErrDB)
	}

	return prof, nil
}

// GetProfile returns the profile with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no profile with that ID
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if there is an issue with
// one of the arguments, it will match ErrBadArgument.
func (sts SterlingServer) GetProfile(ctx context.Context, id string) (dao.Profile, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Profile{}, newError("ID is not valid", ErrBadArgument)
	}

	prof, err := sts.db.Profiles().GetByID(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Profile{}, ErrNotFound
		}
		return dao.Profile{}, newError("could not get profile", err, ErrDB)
	}

	return prof, nil
}

// GetUserProfiles returns all profiles owned by the given user.
func (sts SterlingServer) GetUserProfiles(ctx context.Context, owner uuid.UUID) ([]dao.Profile, error) {
	profs, err := sts.db.Profiles().GetAllByUser(ctx, owner)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return profs, nil
}

// UpdateProfile replaces the settings of the profile with the given ID. The
// owner of the profile is not changed. Returns the updated profile.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no profile with the given
// ID exists, it will match ErrNotFound. If the new name collides with another
// of the owner's profiles, it will match ErrAlreadyExists. If the error
// occured due to an unexpected problem with the DB, it will match ErrDB.
// Finally, if one of the arguments is invalid, it will match ErrBadArgument.
func (sts SterlingServer) UpdateProfile(ctx context.Context, id string, p ProfileModel) (dao.Profile, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Profile{}, newError("ID is not valid", ErrBadArgument)
	}
	if p.Name == "" {
		return dao.Profile{}, newError("profile name cannot be blank", ErrBadArgument)
	}
	if _, err := lexers.Lookup(p.Language); err != nil {
		return dao.Profile{}, newError("no language named "+p.Language+" is registered", ErrBadArgument)
	}

	existing, err := sts.db.Profiles().GetByID(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Profile{}, ErrNotFound
		}
		return dao.Profile{}, wrapDBError(err)
	}

	existing.Name = p.Name
	existing.Language = p.Language
	existing.WordLists = p.WordLists
	existing.Properties = p.Properties

	updated, err := sts.db.Profiles().Update(ctx, uuidID, existing)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.Profile{}, newError("a profile with that name already exists", ErrAlreadyExists)
		} else if err == dao.ErrNotFound {
			return dao.Profile{}, ErrNotFound
		}
		return dao.Profile{}, wrapDBError(err)
	}

	return updated, nil
}

// DeleteProfile deletes the profile with the given ID. It returns the deleted
// profile just after it was deleted.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no profile with that ID
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if there is an issue with
// one of the arguments, it will match ErrBadArgument.
func (sts SterlingServer) DeleteProfile(ctx context.Context, id string) (dao.Profile, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Profile{}, newError("ID is not valid", ErrBadArgument)
	}

	prof, err := sts.db.Profiles().Delete(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Profile{}, ErrNotFound
		}
		return dao.Profile{}, newError("could not delete profile", err, ErrDB)
	}

	return prof, nil
}
