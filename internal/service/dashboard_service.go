package service

import (
	"context"
	"fmt"

	"storerating/internal/model"
	"storerating/internal/repository"
)

// DashboardService reports admin totals.
type DashboardService interface {
	Counts(ctx context.Context) (*model.DashboardCounts, error)
}

type dashboardService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) DashboardService {
	return &dashboardService{userRepo: userRepo, storeRepo: storeRepo, ratingRepo: ratingRepo}
}

func (s *dashboardService) Counts(ctx context.Context) (*model.DashboardCounts, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	stores, err := s.storeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}
	ratings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	return &model.DashboardCounts{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}, nil
}
