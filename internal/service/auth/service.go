package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/user"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		jwtService:     jwtService,
	}
}

// Login implements auth.AuthService. Unknown email and wrong password return
// the same error so the endpoint does not leak which accounts exist.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.CompanyID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Role:        string(u.Role),
	}, nil
}
