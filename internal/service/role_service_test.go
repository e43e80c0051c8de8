package service

import (
	"context"
	"testing"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
	"github.com/DarkZone24/inventory-monitoring-system/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityResolution(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewRoleService(repository.NewRoleRepository(db))
	ctx := context.Background()

	require.NoError(t, svc.UpdatePermissions(ctx, dto.UpdatePermissionsRequest{RoleName: "Staff", Analytics: false, Inventory: true}))

	ok, err := svc.HasCapability(ctx, "Staff", model.CapabilityInventory)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasCapability(ctx, "Staff", model.CapabilityAnalytics)
	require.NoError(t, err)
	assert.False(t, ok)

	// Admin keeps every capability even if its stored flags are cleared.
	require.NoError(t, svc.UpdatePermissions(ctx, dto.UpdatePermissionsRequest{RoleName: "Admin"}))
	ok, err = svc.HasCapability(ctx, "Admin", model.CapabilityAnalytics)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasCapability(ctx, "Guest", model.CapabilityInventory)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, svc.UpdatePermissions(ctx, dto.UpdatePermissionsRequest{RoleName: "Guest"}), apierror.ErrValidation)

	roles, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Admin", roles[0].Name)
	assert.False(t, roles[1].CanAccessAnalytics)
}

func TestCategoryService(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CategoryRequest{Name: "IT Equipment"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CategoryRequest{Name: "IT Equipment"})
	assert.ErrorIs(t, err, apierror.ErrConflict)
	_, err = svc.Create(ctx, dto.CategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, apierror.ErrValidation)

	cats, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
}
