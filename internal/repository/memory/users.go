package memory

import (
	"context"
	"strings"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

type userRepository struct {
	db *DB
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailTaken
		}
	}
	user.ID = r.db.id("users")
	user.CreatedAt = r.db.now()
	user.UpdatedAt = user.CreatedAt
	r.db.users[user.ID] = *user
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	email = strings.TrimSpace(email)
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = r.db.now()
	r.db.users[id] = u
	return nil
}

func (r *userRepository) List(_ context.Context, q model.UserQuery) ([]model.UserListing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []model.UserListing
	for _, u := range r.db.users {
		if !contains(u.Name, q.Name) || !contains(u.Email, q.Email) || !contains(u.Address, q.Address) {
			continue
		}
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		item := model.UserListing{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Role: u.Role}
		if u.IsOwner() {
			avg := model.AverageOf(r.db.ownerScores(u.ID)...)
			item.OwnerRating = &avg
		}
		out = append(out, item)
	}

	sortBy(out, q.Order, userKey(q.Sort), func(u model.UserListing) uint { return u.ID })
	return window(out, q.Page), nil
}

func userKey(k model.UserSort) func(a, b model.UserListing) int {
	switch k {
	case model.UserSortEmail:
		return func(a, b model.UserListing) int { return strings.Compare(a.Email, b.Email) }
	case model.UserSortAddress:
		return func(a, b model.UserListing) int { return strings.Compare(a.Address, b.Address) }
	case model.UserSortRole:
		return func(a, b model.UserListing) int { return strings.Compare(string(a.Role), string(b.Role)) }
	case model.UserSortOwnerRating:
		// NULL sorts before any value, as in MySQL.
		return func(a, b model.UserListing) int {
			switch {
			case a.OwnerRating == nil && b.OwnerRating == nil:
				return 0
			case a.OwnerRating == nil:
				return -1
			case b.OwnerRating == nil:
				return 1
			}
			return a.OwnerRating.Cmp(b.OwnerRating.Decimal)
		}
	}
	return func(a, b model.UserListing) int { return strings.Compare(a.Name, b.Name) }
}

func (r *userRepository) OwnerRating(_ context.Context, ownerID uint) (model.Average, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return model.AverageOf(r.db.ownerScores(ownerID)...), nil
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.users)), nil
}
