package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/user"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func newTestAuthService(t *testing.T) (auth.AuthService, *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]user.User{
		"admin@acme.test": {
			ID:           "user-1",
			CompanyID:    "company-1",
			Email:        "admin@acme.test",
			PasswordHash: string(hash),
			Role:         user.RoleAdmin,
		},
	}}
	svc := NewAuthService(repo, jwt.NewJWTService("test-secret", "1h"))
	return svc, repo
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@acme.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin", resp.Role)
	assert.Greater(t, resp.ExpiresAt, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@acme.test",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@acme.test",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}
