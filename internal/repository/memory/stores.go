package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

type storeRepository struct {
	db *DB
}

func (r *storeRepository) Create(_ context.Context, store *model.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.stores {
		if strings.EqualFold(s.Email, store.Email) {
			return apperrors.ErrStoreEmailTaken
		}
	}
	if store.OwnerID != nil {
		if _, ok := r.db.users[*store.OwnerID]; !ok {
			return apperrors.ErrOwnerNotFound
		}
	}
	store.ID = r.db.id("stores")
	store.CreatedAt = r.db.now()
	store.UpdatedAt = store.CreatedAt
	stored := *store
	stored.Owner = nil
	r.db.stores[store.ID] = stored
	return nil
}

func (r *storeRepository) FindByID(_ context.Context, id uint) (*model.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.stores[id]
	if !ok {
		return nil, apperrors.ErrStoreNotFound
	}
	return &s, nil
}

// listing builds the caller's view of s. Callers hold the lock.
func (r *storeRepository) listing(s model.Store, callerID uint) model.StoreListing {
	item := model.StoreListing{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		OwnerID:       s.OwnerID,
		OverallRating: model.AverageOf(r.db.storeScores(s.ID)...),
	}
	if s.OwnerID != nil {
		if owner, ok := r.db.users[*s.OwnerID]; ok {
			name := owner.Name
			item.OwnerName = &name
		}
	}
	if callerID != 0 {
		if rating, ok := r.db.findRating(callerID, s.ID); ok {
			score := rating.Score
			item.UserRating = &score
		}
	}
	return item
}

func (r *storeRepository) filtered(q model.StoreQuery, callerID uint) []model.StoreListing {
	var out []model.StoreListing
	for _, s := range r.db.stores {
		if contains(s.Name, q.Name) && contains(s.Email, q.Email) && contains(s.Address, q.Address) {
			out = append(out, r.listing(s, callerID))
		}
	}
	sortBy(out, q.Order, storeKey(q.Sort), func(s model.StoreListing) uint { return s.ID })
	return window(out, q.Page)
}

func storeKey(k model.StoreSort) func(a, b model.StoreListing) int {
	switch k {
	case model.StoreSortEmail:
		return func(a, b model.StoreListing) int { return strings.Compare(a.Email, b.Email) }
	case model.StoreSortAddress:
		return func(a, b model.StoreListing) int { return strings.Compare(a.Address, b.Address) }
	case model.StoreSortAverage:
		return func(a, b model.StoreListing) int { return a.OverallRating.Cmp(b.OverallRating.Decimal) }
	}
	return func(a, b model.StoreListing) int { return strings.Compare(a.Name, b.Name) }
}

func (r *storeRepository) Browse(_ context.Context, q model.StoreQuery, callerID uint) ([]model.StoreListing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.filtered(q, callerID), nil
}

func (r *storeRepository) Listing(_ context.Context, storeID, callerID uint) (*model.StoreListing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.stores[storeID]
	if !ok {
		return nil, apperrors.ErrStoreNotFound
	}
	item := r.listing(s, callerID)
	return &item, nil
}

func (r *storeRepository) ListAdmin(_ context.Context, q model.StoreQuery) ([]model.AdminStoreListing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := r.filtered(q, 0)
	out := make([]model.AdminStoreListing, 0, len(rows))
	for _, s := range rows {
		out = append(out, model.AdminStoreListing{
			ID:        s.ID,
			Name:      s.Name,
			Email:     s.Email,
			Address:   s.Address,
			OwnerID:   s.OwnerID,
			OwnerName: s.OwnerName,
			AvgRating: s.OverallRating,
		})
	}
	return out, nil
}

func (r *storeRepository) ListByOwner(_ context.Context, ownerID uint) ([]model.OwnedStore, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []model.OwnedStore{}
	for _, s := range r.db.stores {
		if s.OwnerID == nil || *s.OwnerID != ownerID {
			continue
		}
		out = append(out, model.OwnedStore{
			ID:        s.ID,
			Name:      s.Name,
			Email:     s.Email,
			Address:   s.Address,
			AvgRating: model.AverageOf(r.db.storeScores(s.ID)...),
		})
	}
	slices.SortFunc(out, func(a, b model.OwnedStore) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *storeRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.stores)), nil
}
