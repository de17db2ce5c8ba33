package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storerating/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, q model.UserQuery) ([]model.UserListing, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserListing), args.Error(1)
}

func (m *MockUserRepository) OwnerRating(ctx context.Context, ownerID uint) (model.Average, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(model.Average), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoreRepository is a mock implementation of StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, store *model.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) Browse(ctx context.Context, q model.StoreQuery, callerID uint) ([]model.StoreListing, error) {
	args := m.Called(ctx, q, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoreListing), args.Error(1)
}

func (m *MockStoreRepository) Listing(ctx context.Context, storeID, callerID uint) (*model.StoreListing, error) {
	args := m.Called(ctx, storeID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoreListing), args.Error(1)
}

func (m *MockStoreRepository) ListAdmin(ctx context.Context, q model.StoreQuery) ([]model.AdminStoreListing, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AdminStoreListing), args.Error(1)
}

func (m *MockStoreRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.OwnedStore, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OwnedStore), args.Error(1)
}

func (m *MockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) UpdateScore(ctx context.Context, userID, storeID uint, score model.Score) (*model.Rating, error) {
	args := m.Called(ctx, userID, storeID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) StoreAverage(ctx context.Context, storeID uint) (model.Average, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(model.Average), args.Error(1)
}

func (m *MockRatingRepository) RatersByStore(ctx context.Context, storeIDs []uint) (map[uint][]model.Rater, error) {
	args := m.Called(ctx, storeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint][]model.Rater), args.Error(1)
}

func (m *MockRatingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLoginThrottle is a mock implementation of LoginThrottleInterface.
type MockLoginThrottle struct {
	mock.Mock
}

func (m *MockLoginThrottle) Locked(ctx context.Context, email string) bool {
	args := m.Called(ctx, email)
	return args.Bool(0)
}

func (m *MockLoginThrottle) RecordFailure(ctx context.Context, email string) {
	m.Called(ctx, email)
}

func (m *MockLoginThrottle) Reset(ctx context.Context, email string) {
	m.Called(ctx, email)
}
