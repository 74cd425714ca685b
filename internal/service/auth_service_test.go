package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository/memory"
	"alcyxob/coaching-app/internal/seed"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-not-for-production"

func newAuthServiceForTest(t *testing.T) AuthService {
	t.Helper()
	data, err := seed.Demo(true)
	require.NoError(t, err)
	accountRepo := memory.NewAccountRepository(data.Accounts)
	return NewAuthService(accountRepo, testJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTest(t)

	account, err := svc.Register(ctx, "newuser", "secret123", "New User", "new@example.com", domain.RoleTrainee)
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Empty(t, account.PasswordHash, "hash must not leave the service")

	token, user, err := svc.Login(ctx, "newuser", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, account.ID, user.ID)
	assert.Equal(t, domain.RoleTrainee, user.Role)
}

func TestRegisterDuplicateLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTest(t)

	_, err := svc.Register(ctx, "trainer", "whatever1", "Someone", "someone@example.com", domain.RoleTrainer)
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestLoginDemoAccounts(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTest(t)

	tests := []struct {
		login  string
		wantID string
		role   domain.Role
	}{
		{"trainer", seed.DemoTrainerID, domain.RoleTrainer},
		{"trainee", seed.DemoTraineeID, domain.RoleTrainee},
	}

	for _, tt := range tests {
		t.Run(tt.login, func(t *testing.T) {
			token, user, err := svc.Login(ctx, tt.login, "123456")
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.wantID, user.ID)
			assert.Equal(t, tt.role, user.Role)
		})
	}
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTest(t)

	_, _, err := svc.Login(ctx, "trainer", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "no-such-login", "123456")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestTokenForUserCarriesIdentityClaims(t *testing.T) {
	svc := newAuthServiceForTest(t)

	user := domain.User{ID: "trainee-9", Name: "Joined Trainee", Email: "joined@example.com", Role: domain.RoleTrainee}
	tokenString, err := svc.TokenForUser(user)
	require.NoError(t, err)

	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "trainee-9", claims.UserID)
	assert.Equal(t, "Joined Trainee", claims.Name)
	assert.Equal(t, "joined@example.com", claims.Email)
	assert.Equal(t, domain.RoleTrainee, claims.Role)
	assert.Equal(t, "coaching-app", claims.Issuer)
}
