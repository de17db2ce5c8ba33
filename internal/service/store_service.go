package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
	"storerating/internal/repository"
	"storerating/internal/validation"
)

// CreateStoreInput is an admin request to register a store.
type CreateStoreInput struct {
	Name    string `json:"name" validate:"required,min=20,max=60"`
	Email   string `json:"email" validate:"required,useremail"`
	Address string `json:"address" validate:"max=400"`
	OwnerID *uint  `json:"owner_id"`
}

// StoreService handles store administration and browsing.
type StoreService interface {
	CreateStore(ctx context.Context, in CreateStoreInput) (*model.Store, error)
	ListStores(ctx context.Context, q model.StoreQuery) ([]model.AdminStoreListing, error)
	BrowseStores(ctx context.Context, callerID uint, q model.StoreQuery) ([]model.StoreListing, error)
	GetStore(ctx context.Context, callerID, storeID uint) (*model.StoreListing, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	validate  *validator.Validate
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo repository.StoreRepository, userRepo repository.UserRepository) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		userRepo:  userRepo,
		validate:  validation.New(),
	}
}

// CreateStore registers a store. A supplied owner must exist and have role owner.
func (s *storeService) CreateStore(ctx context.Context, in CreateStoreInput) (*model.Store, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}

	if in.OwnerID != nil {
		owner, err := s.userRepo.FindByID(ctx, *in.OwnerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.ErrOwnerNotFound
			}
			return nil, fmt.Errorf("find owner: %w", err)
		}
		if !owner.IsOwner() {
			return nil, apperrors.ErrNotAnOwner
		}
	}

	store := &model.Store{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		OwnerID: in.OwnerID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, apperrors.ErrStoreEmailTaken) || errors.Is(err, apperrors.ErrOwnerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create store: %w", err)
	}
	return store, nil
}

func (s *storeService) ListStores(ctx context.Context, q model.StoreQuery) ([]model.AdminStoreListing, error) {
	return s.storeRepo.ListAdmin(ctx, q)
}

func (s *storeService) BrowseStores(ctx context.Context, callerID uint, q model.StoreQuery) ([]model.StoreListing, error) {
	return s.storeRepo.Browse(ctx, q, callerID)
}

func (s *storeService) GetStore(ctx context.Context, callerID, storeID uint) (*model.StoreListing, error) {
	return s.storeRepo.Listing(ctx, storeID, callerID)
}
