package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

// StoreRepository defines store persistence and the store listings.
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, id uint) (*model.Store, error)
	// Browse lists stores with their average and the caller's own rating.
	Browse(ctx context.Context, q model.StoreQuery, callerID uint) ([]model.StoreListing, error)
	// Listing returns one store as Browse would.
	Listing(ctx context.Context, storeID, callerID uint) (*model.StoreListing, error)
	ListAdmin(ctx context.Context, q model.StoreQuery) ([]model.AdminStoreListing, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.OwnedStore, error)
	Count(ctx context.Context) (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create creates a new store.
func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	err := r.db.WithContext(ctx).Omit("Owner").Create(store).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrStoreEmailTaken
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrOwnerNotFound
	}
	return err
}

// FindByID finds a store by ID.
func (r *storeRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrStoreNotFound)
	}
	return &store, nil
}

type storeRow struct {
	ID         uint
	Name       string
	Email      string
	Address    string
	OwnerID    *uint
	OwnerName  *string
	AvgRating  decimal.Decimal
	UserRating *int
}

func (row storeRow) listing() model.StoreListing {
	item := model.StoreListing{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Address:       row.Address,
		OwnerID:       row.OwnerID,
		OwnerName:     row.OwnerName,
		OverallRating: model.NewAverage(row.AvgRating),
	}
	if row.UserRating != nil {
		s := model.Score(*row.UserRating)
		item.UserRating = &s
	}
	return item
}

// baseListing selects stores with owner name and average, grouped per store.
// When callerID is non-zero the caller's own rating is joined as ur.
func (r *storeRepository) baseListing(ctx context.Context, callerID uint) *gorm.DB {
	selectCols := "s.id, s.name, s.email, s.address, s.owner_id, o.name AS owner_name, " + avgExpr + " AS avg_rating"
	group := "s.id, s.name, s.email, s.address, s.owner_id, o.name"

	db := r.db.WithContext(ctx).
		Table("stores AS s").
		Joins("LEFT JOIN users o ON o.id = s.owner_id").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id")
	if callerID != 0 {
		selectCols += ", ur.rating AS user_rating"
		group += ", ur.rating"
		db = db.Joins("LEFT JOIN ratings ur ON ur.store_id = s.id AND ur.user_id = ?", callerID)
	}
	return db.Select(selectCols).Group(group)
}

func filterStores(db *gorm.DB, q model.StoreQuery) *gorm.DB {
	db = whereContains(db, "s.name", q.Name)
	db = whereContains(db, "s.email", q.Email)
	return whereContains(db, "s.address", q.Address)
}

func (r *storeRepository) Browse(ctx context.Context, q model.StoreQuery, callerID uint) ([]model.StoreListing, error) {
	db := filterStores(r.baseListing(ctx, callerID), q).
		Order(orderBy(storeSortColumn(q.Sort), q.Order, "s.id"))

	var rows []storeRow
	if err := paginate(db, q.Page).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.StoreListing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.listing())
	}
	return out, nil
}

func (r *storeRepository) Listing(ctx context.Context, storeID, callerID uint) (*model.StoreListing, error) {
	var rows []storeRow
	err := r.baseListing(ctx, callerID).
		Where("s.id = ?", storeID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrStoreNotFound
	}
	item := rows[0].listing()
	return &item, nil
}

func (r *storeRepository) ListAdmin(ctx context.Context, q model.StoreQuery) ([]model.AdminStoreListing, error) {
	db := filterStores(r.baseListing(ctx, 0), q).
		Order(orderBy(storeSortColumn(q.Sort), q.Order, "s.id"))

	var rows []storeRow
	if err := paginate(db, q.Page).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.AdminStoreListing, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.AdminStoreListing{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Address:   row.Address,
			OwnerID:   row.OwnerID,
			OwnerName: row.OwnerName,
			AvgRating: model.NewAverage(row.AvgRating),
		})
	}
	return out, nil
}

func (r *storeRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.OwnedStore, error) {
	var rows []storeRow
	err := r.db.WithContext(ctx).
		Table("stores AS s").
		Select("s.id, s.name, s.email, s.address, "+avgExpr+" AS avg_rating").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Where("s.owner_id = ?", ownerID).
		Group("s.id, s.name, s.email, s.address").
		Order("s.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.OwnedStore, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.OwnedStore{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Address:   row.Address,
			AvgRating: model.NewAverage(row.AvgRating),
		})
	}
	return out, nil
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&n).Error
	return n, err
}
