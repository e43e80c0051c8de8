package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/testsupport"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProductRepoSetStockWritesDerivedStatus(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewProductRepository(db)
	p := testsupport.CreateProduct(t, db, "Microscope", 12)

	require.NoError(t, repo.SetStockTx(db, p, 3))
	assert.Equal(t, model.StockLow, p.Status)

	got := testsupport.ReloadProduct(t, db, p.ID)
	assert.Equal(t, 3, got.StockQty)
	assert.Equal(t, model.StockLow, got.Status)

	require.NoError(t, repo.SetStockTx(db, p, 0))
	got = testsupport.ReloadProduct(t, db, p.ID)
	assert.Equal(t, model.StockOutOfStock, got.Status)
}

func TestProductRepoFindByIDNotFound(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewProductRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	_, err = repo.FindByIDForUpdateTx(db, uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestProductRepoUpdateWithUnchangedValues(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewProductRepository(db)
	p := testsupport.CreateProduct(t, db, "Globe", 8)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.FindByIDForUpdateTx(tx, p.ID)
		if err != nil {
			return err
		}
		if err := repo.UpdateTx(tx, locked); err != nil {
			return err
		}
		return repo.UpdateTx(tx, locked)
	})
	require.NoError(t, err)

	got := testsupport.ReloadProduct(t, db, p.ID)
	assert.Equal(t, "Globe", got.Name)
	assert.Equal(t, 8, got.StockQty)
}

func TestProductRepoListSearchesNameAndCategory(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	sports := testsupport.CreateCategory(t, db, "Sports")
	ball := &model.Product{Name: "Volleyball", CategoryID: &sports.ID}
	ball.SetStock(20)
	require.NoError(t, repo.CreateTx(db, ball))
	testsupport.CreateProduct(t, db, "Beaker", 5)
	testsupport.CreateProduct(t, db, "Projector", 0)

	all, err := repo.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Beaker", all[0].Name)

	byName, err := repo.List(ctx, dto.ProductFilter{Search: "BEAK"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Beaker", byName[0].Name)

	byCategory, err := repo.List(ctx, dto.ProductFilter{Search: "sport"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Sports", byCategory[0].CategoryName())

	out, err := repo.List(ctx, dto.ProductFilter{Status: string(model.StockOutOfStock)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Projector", out[0].Name)
}

func TestProductRepoDeleteRemovesBorrowings(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewProductRepository(db)
	p := testsupport.CreateProduct(t, db, "Laptop", 5)

	b := &model.Borrowing{ProductID: p.ID, BorrowerName: "Ms. Cruz", Quantity: 1, Status: model.BorrowingBorrowed, BorrowDate: time.Now().UTC()}
	require.NoError(t, NewBorrowingRepository(db).CreateTx(db, b))

	require.NoError(t, repo.DeleteTx(db, p.ID))

	var count int64
	require.NoError(t, db.Model(&model.Borrowing{}).Where("product_id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.DeleteTx(db, p.ID), apierror.ErrNotFound)
}
