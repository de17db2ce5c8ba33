package memory

import (
	"cmp"
	"context"
	"slices"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

type ratingRepository struct {
	db *DB
}

func (r *ratingRepository) Create(_ context.Context, rating *model.Rating) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.stores[rating.StoreID]; !ok {
		return apperrors.ErrStoreNotFound
	}
	if _, exists := r.db.findRating(rating.UserID, rating.StoreID); exists {
		return apperrors.ErrAlreadyRated
	}
	rating.ID = r.db.id("ratings")
	rating.CreatedAt = r.db.now()
	rating.UpdatedAt = rating.CreatedAt
	r.db.ratings[rating.ID] = *rating
	return nil
}

func (r *ratingRepository) UpdateScore(_ context.Context, userID, storeID uint, score model.Score) (*model.Rating, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rating, ok := r.db.findRating(userID, storeID)
	if !ok {
		return nil, apperrors.ErrRatingNotFound
	}
	rating.Score = score
	rating.UpdatedAt = r.db.now()
	r.db.ratings[rating.ID] = rating
	return &rating, nil
}

func (r *ratingRepository) StoreAverage(_ context.Context, storeID uint) (model.Average, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return model.AverageOf(r.db.storeScores(storeID)...), nil
}

func (r *ratingRepository) RatersByStore(_ context.Context, storeIDs []uint) (map[uint][]model.Rater, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ratings := make([]model.Rating, 0, len(r.db.ratings))
	for _, rt := range r.db.ratings {
		if slices.Contains(storeIDs, rt.StoreID) {
			ratings = append(ratings, rt)
		}
	}
	slices.SortFunc(ratings, func(a, b model.Rating) int { return cmp.Compare(a.ID, b.ID) })

	out := make(map[uint][]model.Rater, len(storeIDs))
	for _, rt := range ratings {
		u := r.db.users[rt.UserID]
		out[rt.StoreID] = append(out[rt.StoreID], model.Rater{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Rating: rt.Score,
		})
	}
	return out, nil
}

func (r *ratingRepository) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.ratings)), nil
}
