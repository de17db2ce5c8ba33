package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"storerating/internal/auth"
	apperrors "storerating/internal/errors"
	"storerating/internal/metrics"
	"storerating/internal/model"
	"storerating/internal/repository"
	"storerating/internal/validation"
)

const bcryptCost = 10

// dummyHash is compared against on unknown emails so a miss costs as much as a
// wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-account"), bcryptCost)

// SignupInput is a self-registration request. The role is always user.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,useremail"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"max=400"`
}

type changePasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ChangePassword(ctx context.Context, userID uint, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	throttle   auth.LoginThrottleInterface
	validate   *validator.Validate
}

// NewAuthService creates a new authentication service. throttle may be nil.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, throttle auth.LoginThrottleInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		throttle:   throttle,
		validate:   validation.New(),
	}
}

// Signup registers a new account with role user.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}
	return createAccount(ctx, s.userRepo, in.Name, in.Email, in.Password, in.Address, model.RoleUser)
}

// Login verifies credentials and issues an access token carrying the user's role.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.TrimSpace(email)
	if s.throttle != nil && s.throttle.Locked(ctx, email) {
		metrics.RecordLogin(metrics.LoginLocked)
		return "", nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, s.failLogin(ctx, email)
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, s.failLogin(ctx, email)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, email)
	}
	metrics.RecordLogin(metrics.LoginSuccess)
	return token, user, nil
}

func (s *authService) failLogin(ctx context.Context, email string) error {
	if s.throttle != nil {
		s.throttle.RecordFailure(ctx, email)
	}
	metrics.RecordLogin(metrics.LoginFailure)
	return apperrors.ErrInvalidCredentials
}

// ChangePassword replaces the caller's password hash.
func (s *authService) ChangePassword(ctx context.Context, userID uint, newPassword string) error {
	if err := validation.Struct(s.validate, changePasswordInput{NewPassword: newPassword}); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// createAccount hashes the password and stores the user. Inputs are already validated.
func createAccount(ctx context.Context, repo repository.UserRepository, name, email, password, address string, role model.Role) (*model.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		Role:         role,
	}
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
