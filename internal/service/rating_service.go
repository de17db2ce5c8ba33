package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "storerating/internal/errors"
	"storerating/internal/metrics"
	"storerating/internal/model"
	"storerating/internal/repository"
)

// RatingService drives the per-(user, store) rating state machine:
// no rating -> Submit -> rated -> Modify -> rated.
type RatingService interface {
	Submit(ctx context.Context, userID, storeID uint, score model.Score) (*model.RatingOutcome, error)
	Modify(ctx context.Context, userID, storeID uint, score model.Score) (*model.RatingOutcome, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

// NewRatingService creates a new rating service.
func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, storeRepo: storeRepo}
}

// Submit records the caller's first rating for a store.
func (s *ratingService) Submit(ctx context.Context, userID, storeID uint, score model.Score) (*model.RatingOutcome, error) {
	if err := s.precheck(ctx, storeID, score); err != nil {
		return nil, err
	}

	rating := &model.Rating{UserID: userID, StoreID: storeID, Score: score}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyRated) || errors.Is(err, apperrors.ErrStoreNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	metrics.RecordRating(metrics.ActionCreate)
	return s.outcome(ctx, rating)
}

// Modify replaces the caller's existing rating for a store.
func (s *ratingService) Modify(ctx context.Context, userID, storeID uint, score model.Score) (*model.RatingOutcome, error) {
	if err := s.precheck(ctx, storeID, score); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.UpdateScore(ctx, userID, storeID, score)
	if err != nil {
		if errors.Is(err, apperrors.ErrRatingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update rating: %w", err)
	}
	metrics.RecordRating(metrics.ActionUpdate)
	return s.outcome(ctx, rating)
}

// precheck rejects bad scores before any write, then unknown stores.
func (s *ratingService) precheck(ctx context.Context, storeID uint, score model.Score) error {
	if !score.Valid() {
		return apperrors.ErrInvalidRating
	}
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, apperrors.ErrStoreNotFound) {
			return err
		}
		return fmt.Errorf("find store: %w", err)
	}
	return nil
}

func (s *ratingService) outcome(ctx context.Context, rating *model.Rating) (*model.RatingOutcome, error) {
	avg, err := s.ratingRepo.StoreAverage(ctx, rating.StoreID)
	if err != nil {
		return nil, fmt.Errorf("store average: %w", err)
	}
	return &model.RatingOutcome{Rating: rating, OverallRating: avg}, nil
}
