// Package testsupport opens throwaway databases for package tests.
package testsupport

import (
	"context"
	"fmt"
	"testing"

	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Role ids seeded by the initial migration.
var (
	AdminRoleID = uuid.MustParse("5f0c6d52-1b8e-4c4a-9d1e-3a7f2b8c0a01")
	StaffRoleID = uuid.MustParse("5f0c6d52-1b8e-4c4a-9d1e-3a7f2b8c0a02")
)

// NewDB returns an isolated in-memory sqlite database with every migration
// applied. The database disappears when the test's connection closes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := infra.NewDatabase(infra.DriverSQLite, dsn)
	require.NoError(t, err)

	m, err := infra.NewMigrator(db, infra.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateProduct inserts a product with its status derived from qty.
func CreateProduct(t *testing.T, db *gorm.DB, name string, qty int) *model.Product {
	t.Helper()
	p := &model.Product{Name: name}
	p.SetStock(qty)
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateCategory inserts a category.
func CreateCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

// ReloadProduct reads the persisted row back.
func ReloadProduct(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Product {
	t.Helper()
	var p model.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return &p
}
