package service

import (
	"context"
	"fmt"

	"storerating/internal/model"
	"storerating/internal/repository"
)

// NoStoresMessage accompanies an empty owner dashboard.
const NoStoresMessage = "No stores registered for this owner"

// OwnerService builds the store owner's report.
type OwnerService interface {
	Dashboard(ctx context.Context, ownerID uint) (*model.OwnerDashboard, error)
}

type ownerService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

// NewOwnerService creates a new owner service.
func NewOwnerService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) OwnerService {
	return &ownerService{storeRepo: storeRepo, ratingRepo: ratingRepo}
}

// Dashboard lists every store owned by ownerID with its raters and average.
func (s *ownerService) Dashboard(ctx context.Context, ownerID uint) (*model.OwnerDashboard, error) {
	stores, err := s.storeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner stores: %w", err)
	}

	dashboard := &model.OwnerDashboard{
		OwnerID: ownerID,
		Stores:  make([]model.OwnerStoreReport, 0, len(stores)),
	}
	if len(stores) == 0 {
		dashboard.Message = NoStoresMessage
		return dashboard, nil
	}

	ids := make([]uint, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	raters, err := s.ratingRepo.RatersByStore(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list raters: %w", err)
	}

	for _, st := range stores {
		rated := raters[st.ID]
		if rated == nil {
			rated = []model.Rater{}
		}
		dashboard.Stores = append(dashboard.Stores, model.OwnerStoreReport{
			StoreID:       st.ID,
			StoreName:     st.Name,
			Address:       st.Address,
			AvgRating:     st.AvgRating,
			UsersWhoRated: rated,
		})
	}
	return dashboard, nil
}
