package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/bookhaven/bookhaven-backend/pkg/auth"
	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service authenticates dashboard admins and issues access tokens.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	EnsureAdmin(ctx context.Context) error
}

// LoginRequest carries the dashboard credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the minted token and the account it belongs to.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

// UserSummary surfaces limited account data for login responses.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	AdminConfig    config.AdminConfig
}

type service struct {
	users   userRepository
	jwtCfg  config.JWTConfig
	pwCfg   config.PasswordConfig
	admin   config.AdminConfig
	now     func() time.Time
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:  params.UserRepo,
		jwtCfg: params.JWTConfig,
		pwCfg:  params.PasswordConfig,
		admin:  params.AdminConfig,
		now:    time.Now,
	}, nil
}

// Login verifies the credentials and mints an admin access token. Unknown
// accounts and wrong passwords report the same way.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if user.Role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account has no dashboard access")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResponse{
		AccessToken: token,
		User: UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role.String(),
		},
	}, nil
}

// EnsureAdmin creates the bootstrap admin account once, from configuration.
// It does nothing when no admin credentials are configured or the account
// already exists.
func (s *service) EnsureAdmin(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.admin.Email))
	if email == "" || s.admin.Password == "" {
		return nil
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check admin account")
	}

	hash, err := security.HashPassword(s.admin.Password, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin password")
	}

	if _, err := s.users.Create(ctx, &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         s.admin.Name,
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin account")
	}
	return nil
}
