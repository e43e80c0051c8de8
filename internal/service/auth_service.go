package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/config"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"
	"github.com/DarkZone24/inventory-monitoring-system/internal/middleware"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is shared with the imsctl hash and seed commands.
const BcryptCost = 12

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", apierror.ErrUnauthorized)

// AuthService handles login and the admin-only user management endpoints.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
}

type authService struct {
	users repository.UserRepository
	roles repository.RoleRepository
	cache *infra.Cache
	cfg   *config.Config
	now   func() time.Time
}

// The cache is only written to: user changes invalidate the dashboard's
// total_users figure.
func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, cache *infra.Cache, cfg *config.Config) AuthService {
	return &authService{users: users, roles: roles, cache: cache, cfg: cfg, now: time.Now}
}

// Login never reveals whether the email exists; every failure is the same 401.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if user.Status != model.UserActive {
		return nil, fmt.Errorf("%w: account is inactive", apierror.ErrForbidden)
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	if req.RememberMe {
		ttl = time.Duration(s.cfg.JWTRememberHours) * time.Hour
	}
	token, err := s.generateToken(user, ttl)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.RoleName()),
		Token: token,
	}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = toUserResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	role, err := s.resolveRole(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Status:       model.UserActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyDashboard)
	user.Role = role
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	role, err := s.resolveRole(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(req.Name)
	user.Email = normalizeEmail(req.Email)
	user.RoleID = role.ID
	user.Role = role
	user.Status = model.UserStatus(req.Status)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cacheKeyDashboard)
	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser refuses to delete the caller's own account.
func (s *authService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return fmt.Errorf("%w: you cannot delete your own account", apierror.ErrValidation)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cacheKeyDashboard)
	return nil
}

func (s *authService) resolveRole(ctx context.Context, name string) (*model.Role, error) {
	role, err := s.roles.FindByName(ctx, model.RoleName(name))
	if err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			return nil, fmt.Errorf("%w: role not found", apierror.ErrValidation)
		}
		return nil, err
	}
	return role, nil
}

func (s *authService) generateToken(user *model.User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := middleware.JWTClaims{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  string(user.RoleName()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.RoleName()),
		Status: string(u.Status),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
