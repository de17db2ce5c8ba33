package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

// RatingRepository defines rating persistence operations.
type RatingRepository interface {
	// Create inserts a first rating. A second rating for the same (user, store)
	// fails with ErrAlreadyRated via the unique index.
	Create(ctx context.Context, rating *model.Rating) error
	// UpdateScore locks the caller's rating row and rewrites its score in one
	// transaction. It fails with ErrRatingNotFound when there is no row.
	UpdateScore(ctx context.Context, userID, storeID uint, score model.Score) (*model.Rating, error)
	StoreAverage(ctx context.Context, storeID uint) (model.Average, error)
	// RatersByStore returns the raters of each given store, keyed by store ID.
	RatersByStore(ctx context.Context, storeIDs []uint) (map[uint][]model.Rater, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrAlreadyRated
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrStoreNotFound
	}
	return err
}

func (r *ratingRepository) UpdateScore(ctx context.Context, userID, storeID uint, score model.Score) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND store_id = ?", userID, storeID).
			First(&rating).Error; err != nil {
			return notFound(err, apperrors.ErrRatingNotFound)
		}
		rating.Score = score
		return tx.Model(&rating).Omit(clause.Associations).Update("rating", score).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) StoreAverage(ctx context.Context, storeID uint) (model.Average, error) {
	var row averageRow
	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select(avgExpr+" AS avg").
		Where("r.store_id = ?", storeID).
		Scan(&row).Error
	if err != nil {
		return model.Average{}, err
	}
	return model.NewAverage(row.Avg), nil
}

type raterRow struct {
	StoreID uint
	UserID  uint
	Name    string
	Email   string
	Rating  int
}

func (r *ratingRepository) RatersByStore(ctx context.Context, storeIDs []uint) (map[uint][]model.Rater, error) {
	out := make(map[uint][]model.Rater, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}

	var rows []raterRow
	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("r.store_id, u.id AS user_id, u.name, u.email, r.rating").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.store_id IN ?", storeIDs).
		Order("r.store_id ASC, r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.StoreID] = append(out[row.StoreID], model.Rater{
			UserID: row.UserID,
			Name:   row.Name,
			Email:  row.Email,
			Rating: model.Score(row.Rating),
		})
	}
	return out, nil
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&n).Error
	return n, err
}
