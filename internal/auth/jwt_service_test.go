package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerating/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := &model.User{ID: 42, Role: model.RoleOwner}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleOwner, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := &model.User{ID: 7, Role: model.RoleUser}

	expired := NewJWTService("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken(user)
	require.NoError(t, err)

	otherKeyToken, err := NewJWTService("other-secret", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7, Role: model.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badRoleToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 7, Role: "root"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expiredToken},
		{name: "wrong key", token: otherKeyToken},
		{name: "unsigned", token: noneToken},
		{name: "unknown role", token: badRoleToken},
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestNewJWTService_DefaultsTTL(t *testing.T) {
	svc := NewJWTService("s", 0)
	assert.Equal(t, DefaultTokenExpiry, svc.ttl)
}
