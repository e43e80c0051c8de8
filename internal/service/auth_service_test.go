package service

import (
	"context"
	"testing"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/config"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/middleware"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
	"github.com/DarkZone24/inventory-monitoring-system/internal/testsupport"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) AuthService {
	db := testsupport.NewDB(t)
	cfg := &config.Config{JWTSecret: testSecret, JWTExpirationHours: 8, JWTRememberHours: 168}
	return NewAuthService(repository.NewUserRepository(db), repository.NewRoleRepository(db), nil, cfg)
}

func parseToken(t *testing.T, token string) *middleware.JWTClaims {
	claims := &middleware.JWTClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestLoginIssuesTokenWithRoleAndExpiry(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name: "Principal", Email: "Principal@School.edu", Password: "s3cretpass", Role: "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "principal@school.edu", created.Email)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "principal@school.edu", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", resp.Role)

	claims := parseToken(t, resp.Token)
	assert.Equal(t, created.ID, claims.ID)
	assert.Equal(t, "Admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt.Time, time.Minute)

	resp, err = svc.Login(ctx, dto.LoginRequest{Email: "principal@school.edu", Password: "s3cretpass", RememberMe: true})
	require.NoError(t, err)
	claims = parseToken(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, dto.CreateUserRequest{Name: "Staff", Email: "staff@school.edu", Password: "password1", Role: "Staff"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "staff@school.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@school.edu", Password: "password1"})
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)

	_, err = svc.UpdateUser(ctx, uuid.MustParse(u.ID), dto.UpdateUserRequest{
		Name: "Staff", Email: "staff@school.edu", Role: "Staff", Status: "Inactive",
	})
	require.NoError(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "staff@school.edu", Password: "password1"})
	assert.ErrorIs(t, err, apierror.ErrForbidden)
}

func TestUserManagement(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	admin, err := svc.CreateUser(ctx, dto.CreateUserRequest{Name: "Admin", Email: "admin@school.edu", Password: "password1", Role: "Admin"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Name: "Dup", Email: "ADMIN@school.edu", Password: "password1", Role: "Staff"})
	assert.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Name: "X", Email: "x@school.edu", Password: "password1", Role: "Janitor"})
	assert.ErrorIs(t, err, apierror.ErrValidation)

	staff, err := svc.CreateUser(ctx, dto.CreateUserRequest{Name: "Teacher", Email: "t@school.edu", Password: "password1", Role: "Staff"})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	adminID := uuid.MustParse(admin.ID)
	assert.ErrorIs(t, svc.DeleteUser(ctx, adminID, adminID), apierror.ErrValidation)
	require.NoError(t, svc.DeleteUser(ctx, adminID, uuid.MustParse(staff.ID)))
	assert.ErrorIs(t, svc.DeleteUser(ctx, adminID, uuid.MustParse(staff.ID)), apierror.ErrNotFound)
}
