package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/sterling/server/dao"
	"github.com/google/uuid"
)

func NewProfilesRepository() *InMemoryProfilesRepository {
	return &InMemoryProfilesRepository{
		profiles:    make(map[uuid.UUID]dao.Profile),
		byUserIndex: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

type InMemoryProfilesRepository struct {
	profiles    map[uuid.UUID]dao.Profile
	byUserIndex map[uuid.UUID]map[uuid.UUID]bool
}

func (impr *InMemoryProfilesRepository) Close() error {
	return nil
}

func (impr *InMemoryProfilesRepository) Create(ctx context.Context, p dao.Profile) (dao.Profile, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Profile{}, fmt.Errorf("could not generate ID: %w", err)
	}

	p.ID = newUUID

	// make sure the owner doesn't already have one with that name
	for existingID := range impr.byUserIndex[p.UserID] {
		if impr.profiles[existingID].Name == p.Name {
			return dao.Profile{}, dao.ErrConstraintViolation
		}
	}

	now := time.Now()
	p.Created = now
	p.Modified = now

	impr.profiles[p.ID] = p
	if impr.byUserIndex[p.UserID] == nil {
		impr.byUserIndex[p.UserID] = make(map[uuid.UUID]bool)
	}
	impr.byUserIndex[p.UserID][p.ID] = true

	return p, nil
}

func (impr *InMemoryProfilesRepository) GetAll(ctx context.Context) ([]dao.Profile, error) {
	all := make([]dao.Profile, len(impr.profiles))

	i := 0
	for k := range impr.profiles {
		all[i] = impr.profiles[k]
		i++
	}

	sort.Slice(all, func(l, r int) bool {
		return all[l].ID.String() < all[r].ID.String()
	})

	return all, nil
}

func (impr *InMemoryProfilesRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Profile, error) {
	var all []dao.Profile

	for id := range impr.byUserIndex[userID] {
		all = append(all, impr.profiles[id])
	}

	sort.Slice(all, func(l, r int) bool {
		return all[l].ID.String() < all[r].ID.String()
	})

	return all, nil
}

func (impr *InMemoryProfilesRepository) Update(ctx context.Context, id uuid.UUID, p dao.Profile) (dao.Profile, error) {
	existing, ok := impr.profiles[id]
	if !ok {
		return dao.Profile{}, dao.ErrNotFound
	}

	// check for name conflicts within the owner's other profiles
	if p.Name != existing.Name || p.UserID != existing.UserID {
		for otherID := range impr.byUserIndex[p.UserID] {
			if otherID != id && impr.profiles[otherID].Name == p.Name {
				return dao.Profile{}, dao.ErrConstraintViolation
			}
		}
	}
	if p.ID != id {
		if _, ok := impr.profiles[p.ID]; ok {
			return dao.Profile{}, dao.ErrConstraintViolation
		}
	}

	p.Created = existing.Created
	p.Modified = time.Now()

	impr.profiles[p.ID] = p
	if impr.byUserIndex[p.UserID] == nil {
		impr.byUserIndex[p.UserID] = make(map[uuid.UUID]bool)
	}
	impr.byUserIndex[p.UserID][p.ID] = true
	if p.ID != id {
		delete(impr.profiles, id)
		delete(impr.byUserIndex[existing.UserID], id)
	} else if p.UserID != existing.UserID {
		delete(impr.byUserIndex[existing.UserID], id)
	}

	return p, nil
}

func (impr *InMemoryProfilesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Profile, error) {
	p, ok := impr.profiles[id]
	if !ok {
		return dao.Profile{}, dao.ErrNotFound
	}

	return p, nil
}

func (impr *InMemoryProfilesRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Profile, error) {
	p, ok := impr.profiles[id]
	if !ok {
		return dao.Profile{}, dao.ErrNotFound
	}

	delete(impr.byUserIndex[p.UserID], p.ID)
	delete(impr.profiles, p.ID)

	return p, nil
}
