package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storerating/internal/auth"
	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

var validName = strings.Repeat("J", 20)

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		input         SignupInput
		setupMock     func(*MockUserRepository)
		expectedError error
		wantField     string
	}{
		{
			name:  "successful signup",
			input: SignupInput{Name: validName, Email: "test@example.com", Password: "Secret#123", Address: "1 Road"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleUser && u.Email == "test@example.com"
				})).Return(nil)
			},
		},
		{
			name:  "email already registered",
			input: SignupInput{Name: validName, Email: "existing@example.com", Password: "Secret#123"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(apperrors.ErrEmailTaken)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:      "weak password",
			input:     SignupInput{Name: validName, Email: "test@example.com", Password: "password"},
			setupMock: func(m *MockUserRepository) {},
			wantField: "password",
		},
		{
			name:  "name length counts surrounding spaces",
			input: SignupInput{Name: strings.Repeat("J", 19) + " ", Email: "test@example.com", Password: "Secret#123"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Name == strings.Repeat("J", 19)+" "
				})).Return(nil)
			},
		},
		{
			name:      "short name",
			input:     SignupInput{Name: "Too short", Email: "test@example.com", Password: "Secret#123"},
			setupMock: func(m *MockUserRepository) {},
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), nil)
			user, err := service.Signup(context.Background(), tt.input)

			switch {
			case tt.wantField != "":
				var vErr *apperrors.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.Nil(t, user)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.input.Password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Secret#123"), 10)
	stored := &model.User{ID: 11, Email: "test@example.com", PasswordHash: string(hashedPassword), Role: model.RoleOwner}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockLoginThrottle)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "Secret#123",
			setupMock: func(mRepo *MockUserRepository, mThrottle *MockLoginThrottle) {
				mThrottle.On("Locked", mock.Anything, "test@example.com").Return(false)
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
				mThrottle.On("Reset", mock.Anything, "test@example.com").Return()
			},
		},
		{
			name:     "invalid credentials - user not found",
			email:    "notfound@example.com",
			password: "Secret#123",
			setupMock: func(mRepo *MockUserRepository, mThrottle *MockLoginThrottle) {
				mThrottle.On("Locked", mock.Anything, "notfound@example.com").Return(false)
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, apperrors.ErrUserNotFound)
				mThrottle.On("RecordFailure", mock.Anything, "notfound@example.com").Return()
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - wrong password",
			email:    "test@example.com",
			password: "Wrong#123",
			setupMock: func(mRepo *MockUserRepository, mThrottle *MockLoginThrottle) {
				mThrottle.On("Locked", mock.Anything, "test@example.com").Return(false)
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(stored, nil)
				mThrottle.On("RecordFailure", mock.Anything, "test@example.com").Return()
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "locked out",
			email:    "test@example.com",
			password: "Secret#123",
			setupMock: func(mRepo *MockUserRepository, mThrottle *MockLoginThrottle) {
				mThrottle.On("Locked", mock.Anything, "test@example.com").Return(true)
			},
			expectedError: apperrors.ErrTooManyAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockThrottle := new(MockLoginThrottle)
			tt.setupMock(mockRepo, mockThrottle)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(mockRepo, jwtService, mockThrottle)

			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, uint(11), claims.UserID)
				assert.Equal(t, model.RoleOwner, claims.Role)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockThrottle.AssertExpectations(t)
		})
	}
}

func TestDummyHashUsesPasswordCost(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)
}

func TestAuthService_LoginRepositoryFailureIsInternal(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, errors.New("connection reset"))

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), nil)
	_, _, err := service.Login(context.Background(), "test@example.com", "Secret#123")

	assert.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("stores a new hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UpdatePassword", mock.Anything, uint(5), mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("Fresh!Pass1")) == nil
		})).Return(nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), nil)
		assert.NoError(t, service.ChangePassword(context.Background(), 5, "Fresh!Pass1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), nil)
		err := service.ChangePassword(context.Background(), 5, "weak")

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "newPassword", vErr.Field)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}
