package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"storerating/internal/model"
	"storerating/internal/repository"
	"storerating/internal/validation"
)

// CreateUserInput is an admin request to create an account with any role.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,useremail"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"max=400"`
	Role     string `json:"role" validate:"required,role"`
}

// UserService exposes admin user operations.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.UserDetail, error)
	ListUsers(ctx context.Context, q model.UserQuery) ([]model.UserListing, error)
}

type userService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	validate  *validator.Validate
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository, storeRepo repository.StoreRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
		validate:  validation.New(),
	}
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.Role = strings.TrimSpace(in.Role)
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}
	return createAccount(ctx, s.userRepo, in.Name, in.Email, in.Password, in.Address, model.Role(in.Role))
}

// GetUser returns a user's details. Owners also get their stores and the
// average over every rating those stores received.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.UserDetail{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Role:    user.Role,
	}
	if !user.IsOwner() {
		return detail, nil
	}

	stores, err := s.storeRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list owner stores: %w", err)
	}
	avg, err := s.userRepo.OwnerRating(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("owner rating: %w", err)
	}
	detail.Stores = stores
	detail.OwnerRating = &avg
	return detail, nil
}

func (s *userService) ListUsers(ctx context.Context, q model.UserQuery) ([]model.UserListing, error) {
	return s.userRepo.List(ctx, q)
}
