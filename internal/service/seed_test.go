package service

import (
	"context"
	"testing"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
	"github.com/DarkZone24/inventory-monitoring-system/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testsupport.NewDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)
	cats := repository.NewCategoryRepository(db)
	admin := AdminSeed{Email: "Admin@School.edu", Password: "admin123"}

	res, err := Seed(ctx, users, roles, cats, admin)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCategories), res.CategoriesCreated)
	assert.True(t, res.AdminCreated)

	u, err := users.FindByEmail(ctx, "admin@school.edu")
	require.NoError(t, err)
	assert.Equal(t, "System Admin", u.Name)
	assert.Equal(t, "Admin", string(u.RoleName()))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin123")))

	res, err = Seed(ctx, users, roles, cats, admin)
	require.NoError(t, err)
	assert.Zero(t, res.CategoriesCreated)
	assert.False(t, res.AdminCreated)

	_, err = Seed(ctx, users, roles, cats, AdminSeed{})
	assert.ErrorIs(t, err, apierror.ErrValidation)
}
