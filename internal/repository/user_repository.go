package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	List(ctx context.Context, q model.UserQuery) ([]model.UserListing, error)
	OwnerRating(ctx context.Context, ownerID uint) (model.Average, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailTaken
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ownerRatingExpr averages every rating on every store owned by u. It is only
// selected for owners; everyone else gets NULL.
const ownerRatingExpr = "(SELECT " + avgExpr + " FROM ratings r JOIN stores s ON s.id = r.store_id WHERE s.owner_id = u.id)"

type userRow struct {
	ID          uint
	Name        string
	Email       string
	Address     string
	Role        model.Role
	OwnerRating decimal.NullDecimal
}

func (r *userRepository) List(ctx context.Context, q model.UserQuery) ([]model.UserListing, error) {
	db := r.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id, u.name, u.email, u.address, u.role, CASE WHEN u.role = ? THEN "+ownerRatingExpr+" END AS owner_rating", model.RoleOwner)

	db = whereContains(db, "u.name", q.Name)
	db = whereContains(db, "u.email", q.Email)
	db = whereContains(db, "u.address", q.Address)
	if q.Role != "" {
		db = db.Where("u.role = ?", q.Role)
	}

	var rows []userRow
	err := paginate(db.Order(orderBy(userSortColumn(q.Sort), q.Order, "u.id")), q.Page).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.UserListing, 0, len(rows))
	for _, row := range rows {
		item := model.UserListing{
			ID:      row.ID,
			Name:    row.Name,
			Email:   row.Email,
			Address: row.Address,
			Role:    row.Role,
		}
		if row.OwnerRating.Valid {
			avg := model.NewAverage(row.OwnerRating.Decimal)
			item.OwnerRating = &avg
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *userRepository) OwnerRating(ctx context.Context, ownerID uint) (model.Average, error) {
	var row averageRow
	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select(avgExpr+" AS avg").
		Joins("JOIN stores s ON s.id = r.store_id").
		Where("s.owner_id = ?", ownerID).
		Scan(&row).Error
	if err != nil {
		return model.Average{}, err
	}
	return model.NewAverage(row.Avg), nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

type averageRow struct {
	Avg decimal.Decimal
}

// notFound swaps gorm.ErrRecordNotFound for the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
