package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
	"storerating/internal/repository/memory"
)

func TestRatingService_RejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name      string
		score     model.Score
		setupMock func(*MockStoreRepository)
		wantErr   error
	}{
		{
			name:      "zero",
			score:     0,
			setupMock: func(m *MockStoreRepository) {},
			wantErr:   apperrors.ErrInvalidRating,
		},
		{
			name:      "six",
			score:     6,
			setupMock: func(m *MockStoreRepository) {},
			wantErr:   apperrors.ErrInvalidRating,
		},
		{
			name:  "unknown store",
			score: 3,
			setupMock: func(m *MockStoreRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, apperrors.ErrStoreNotFound)
			},
			wantErr: apperrors.ErrStoreNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStores := new(MockStoreRepository)
			mockRatings := new(MockRatingRepository)
			tt.setupMock(mockStores)

			service := NewRatingService(mockRatings, mockStores)
			for _, op := range []func(context.Context, uint, uint, model.Score) (*model.RatingOutcome, error){service.Submit, service.Modify} {
				out, err := op(context.Background(), 1, 99, tt.score)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
			}

			mockRatings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			mockRatings.AssertNotCalled(t, "UpdateScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockStores.AssertExpectations(t)
		})
	}
}

func TestRatingService_Submit(t *testing.T) {
	mockStores := new(MockStoreRepository)
	mockRatings := new(MockRatingRepository)
	mockStores.On("FindByID", mock.Anything, uint(2)).Return(&model.Store{ID: 2}, nil)
	mockRatings.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Rating) bool {
		return r.UserID == 1 && r.StoreID == 2 && r.Score == 4
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Rating).ID = 30
	}).Return(nil)
	mockRatings.On("StoreAverage", mock.Anything, uint(2)).Return(model.AverageOf(4, 5), nil)

	out, err := NewRatingService(mockRatings, mockStores).Submit(context.Background(), 1, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(30), out.Rating.ID)
	assert.Equal(t, "4.50", out.OverallRating.String())

	mockStores.AssertExpectations(t)
	mockRatings.AssertExpectations(t)
}

func TestRatingService_WrapsStorageFailures(t *testing.T) {
	mockStores := new(MockStoreRepository)
	mockRatings := new(MockRatingRepository)
	mockStores.On("FindByID", mock.Anything, uint(2)).Return(&model.Store{ID: 2}, nil)
	mockRatings.On("UpdateScore", mock.Anything, uint(1), uint(2), model.Score(3)).Return(nil, errors.New("deadlock"))

	_, err := NewRatingService(mockRatings, mockStores).Modify(context.Background(), 1, 2, 3)
	assert.True(t, apperrors.IsInternal(err))
}

func TestRatingService_StateMachine(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	store := &model.Store{Name: "A Store With A Long Enough Name", Email: "store@example.com"}
	require.NoError(t, db.Stores().Create(ctx, store))

	service := NewRatingService(db.Ratings(), db.Stores())

	_, err := service.Modify(ctx, 1, store.ID, 3)
	assert.ErrorIs(t, err, apperrors.ErrRatingNotFound)

	out, err := service.Submit(ctx, 1, store.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "4.00", out.OverallRating.String())

	_, err = service.Submit(ctx, 1, store.ID, 5)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRated)

	out, err = service.Submit(ctx, 2, store.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "2.50", out.OverallRating.String())

	out, err = service.Modify(ctx, 1, store.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, model.Score(2), out.Rating.Score)
	assert.Equal(t, "1.50", out.OverallRating.String())
}
