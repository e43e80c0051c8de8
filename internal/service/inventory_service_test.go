package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
	"github.com/DarkZone24/inventory-monitoring-system/internal/testsupport"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInventoryService(t *testing.T) (InventoryService, *gorm.DB, *recordingAlerter) {
	db := testsupport.NewDB(t)
	alerter := &recordingAlerter{}
	svc := NewInventoryService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewStockMovementRepository(db),
		nil,
		alerter,
	)
	return svc, db, alerter
}

func intPtr(v int) *int { return &v }

func TestCreateDerivesStatusAndDefaultsPrice(t *testing.T) {
	svc, _, _ := newInventoryService(t)
	ctx := context.Background()

	cases := []struct {
		qty  int
		want string
	}{
		{0, "Out of Stock"},
		{1, "Low Stock"},
		{9, "Low Stock"},
		{10, "Optimal"},
	}
	for _, tc := range cases {
		p, err := svc.Create(ctx, uuid.Nil, dto.ProductRequest{Name: "Item", StockQty: intPtr(tc.qty)})
		require.NoError(t, err)
		assert.Equal(t, tc.want, p.Status, "qty %d", tc.qty)
		assert.True(t, p.Price.IsZero())
	}
}

func TestCreateWithCategoryAndPrice(t *testing.T) {
	svc, db, _ := newInventoryService(t)
	cat := testsupport.CreateCategory(t, db, "Sports")
	catID := cat.ID.String()
	price := decimal.RequireFromString("1499.999")

	p, err := svc.Create(context.Background(), uuid.Nil, dto.ProductRequest{
		Name: "  Volleyball Net ", CategoryID: &catID, Price: &price, StockQty: intPtr(15),
	})
	require.NoError(t, err)
	assert.Equal(t, "Volleyball Net", p.Name)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Sports", *p.Category)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1500)), p.Price.String())

	var moves []model.StockMovement
	require.NoError(t, db.Where("product_id = ?", p.ID).Find(&moves).Error)
	require.Len(t, moves, 1)
	assert.Equal(t, model.MovementInitial, moves[0].Kind)
	assert.Equal(t, 15, moves[0].QtyAfter)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newInventoryService(t)
	ctx := context.Background()
	missing := uuid.NewString()
	negative := decimal.NewFromInt(-1)

	for name, req := range map[string]dto.ProductRequest{
		"blank name":       {Name: " ", StockQty: intPtr(1)},
		"missing qty":      {Name: "A"},
		"negative qty":     {Name: "A", StockQty: intPtr(-1)},
		"negative price":   {Name: "A", StockQty: intPtr(1), Price: &negative},
		"unknown category": {Name: "A", StockQty: intPtr(1), CategoryID: &missing},
	} {
		_, err := svc.Create(ctx, uuid.Nil, req)
		assert.ErrorIs(t, err, apierror.ErrValidation, name)
	}
}

func TestUpdateRecomputesStatusAndRecordsAdjustment(t *testing.T) {
	svc, db, alerter := newInventoryService(t)
	ctx := context.Background()
	p := testsupport.CreateProduct(t, db, "Laptop", 20)

	resp, err := svc.Update(ctx, uuid.Nil, p.ID, dto.ProductRequest{Name: "Laptop", StockQty: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.StockQty)
	assert.Equal(t, "Low Stock", resp.Status)

	var moves []model.StockMovement
	require.NoError(t, db.Where("product_id = ?", p.ID).Find(&moves).Error)
	require.Len(t, moves, 1)
	assert.Equal(t, model.MovementAdjustment, moves[0].Kind)
	assert.Equal(t, -18, moves[0].Delta)

	require.Len(t, alerter.alerts, 1)
	assert.Equal(t, "update", alerter.alerts[0].Cause)

	// Unchanged quantity writes no movement.
	_, err = svc.Update(ctx, uuid.Nil, p.ID, dto.ProductRequest{Name: "Laptop Pro", StockQty: intPtr(2)})
	require.NoError(t, err)
	require.NoError(t, db.Where("product_id = ?", p.ID).Find(&moves).Error)
	assert.Len(t, moves, 1)

	_, err = svc.Update(ctx, uuid.Nil, uuid.New(), dto.ProductRequest{Name: "X", StockQty: intPtr(1)})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestDeleteCascadesBorrowings(t *testing.T) {
	svc, db, _ := newInventoryService(t)
	ctx := context.Background()
	p := testsupport.CreateProduct(t, db, "Speaker", 6)

	borrowSvc := NewBorrowingService(
		repository.NewProductRepository(db),
		repository.NewBorrowingRepository(db),
		repository.NewStockMovementRepository(db),
		nil, nil,
	)
	_, err := borrowSvc.Borrow(ctx, uuid.Nil, borrowReq(p, 2))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Borrowing{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMovementsForUnknownProduct(t *testing.T) {
	svc, _, _ := newInventoryService(t)
	_, err := svc.Movements(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestExportFormats(t *testing.T) {
	svc, db, _ := newInventoryService(t)
	ctx := context.Background()
	testsupport.CreateProduct(t, db, "Beaker", 4)

	file, err := svc.Export(ctx, "csv")
	require.NoError(t, err)
	assert.Contains(t, file.Filename, ".csv")
	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Beaker", records[1][1])

	file, err = svc.Export(ctx, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)

	_, err = svc.Export(ctx, "docx")
	assert.ErrorIs(t, err, apierror.ErrValidation)
}
