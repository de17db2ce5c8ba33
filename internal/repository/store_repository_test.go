package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

func TestStoreRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		code    uint16
		wantErr error
	}{
		{name: "duplicate email", code: 1062, wantErr: apperrors.ErrStoreEmailTaken},
		{name: "owner vanished", code: 1452, wantErr: apperrors.ErrOwnerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec("INSERT INTO `stores`").
				WillReturnError(&mysqldriver.MySQLError{Number: tt.code})

			err := NewStoreRepository(db).Create(context.Background(), &model.Store{Email: "s@example.com"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStoreRepository_Browse(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT s.id, s.name, s.email, s.address, s.owner_id, o.name AS owner_name, " +
		"COALESCE\\(ROUND\\(AVG\\(r.rating\\), 2\\), 0\\) AS avg_rating, ur.rating AS user_rating FROM stores AS s " +
		"LEFT JOIN users o ON o.id = s.owner_id LEFT JOIN ratings r ON r.store_id = s.id " +
		"LEFT JOIN ratings ur ON ur.store_id = s.id AND ur.user_id = \\? " +
		"WHERE LOWER\\(s.address\\) LIKE \\? GROUP BY .* ORDER BY avg_rating DESC, s.id ASC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "owner_name", "avg_rating", "user_rating"}).
			AddRow(2, "The Corner Grocery Store Ltd", "corner@example.com", "1 High Street", 4, "Olivia Owner Of Stores", "4.00", 4).
			AddRow(3, "The Other Grocery Store Ltd", "other@example.com", "2 High Street", nil, nil, "0", nil))

	q := model.StoreQuery{
		Address: "High Street",
		Sort:    model.StoreSortAverage,
		Order:   model.SortDesc,
	}
	stores, err := NewStoreRepository(db).Browse(context.Background(), q, 8)
	require.NoError(t, err)
	require.Len(t, stores, 2)

	assert.Equal(t, "4.00", stores[0].OverallRating.String())
	require.NotNil(t, stores[0].UserRating)
	assert.Equal(t, model.Score(4), *stores[0].UserRating)
	require.NotNil(t, stores[0].OwnerName)

	assert.Equal(t, "0.00", stores[1].OverallRating.String())
	assert.Nil(t, stores[1].UserRating)
	assert.Nil(t, stores[1].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepository_ListingNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM stores AS s .* WHERE s.id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	store, err := NewStoreRepository(db).Listing(context.Background(), 99, 1)
	assert.ErrorIs(t, err, apperrors.ErrStoreNotFound)
	assert.Nil(t, store)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepository_ListByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM stores AS s LEFT JOIN ratings r ON r.store_id = s.id WHERE s.owner_id = \\?").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "avg_rating"}).
			AddRow(2, "The Corner Grocery Store Ltd", "corner@example.com", "1 High Street", "3.50"))

	stores, err := NewStoreRepository(db).ListByOwner(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "3.50", stores[0].AvgRating.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
