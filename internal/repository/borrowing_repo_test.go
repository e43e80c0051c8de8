package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReturnedTransitionsOnce(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewBorrowingRepository(db)
	p := testsupport.CreateProduct(t, db, "Tripod", 3)

	b := &model.Borrowing{ProductID: p.ID, BorrowerName: "Mr. Reyes", Quantity: 2, Status: model.BorrowingBorrowed, BorrowDate: time.Now().UTC()}
	require.NoError(t, repo.CreateTx(db, b))

	at := time.Now().UTC()
	require.NoError(t, repo.MarkReturnedTx(db, b, at))
	assert.True(t, b.IsReturned())
	require.NotNil(t, b.ReturnDate)

	err := repo.MarkReturnedTx(db, b, at)
	assert.ErrorIs(t, err, apierror.ErrAlreadyReturned)

	got, err := repo.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BorrowingReturned, got.Status)
	assert.Equal(t, "Tripod", got.Product.Name)
}

func TestBorrowingListFiltersAndOrders(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewBorrowingRepository(db)
	p := testsupport.CreateProduct(t, db, "Camera", 10)

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, status := range []model.BorrowingStatus{model.BorrowingBorrowed, model.BorrowingReturned, model.BorrowingBorrowed} {
		require.NoError(t, repo.CreateTx(db, &model.Borrowing{
			ProductID:    p.ID,
			BorrowerName: "Borrower",
			Quantity:     1,
			Status:       status,
			BorrowDate:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := repo.List(context.Background(), dto.BorrowingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].BorrowDate.After(all[1].BorrowDate))

	open, err := repo.List(context.Background(), dto.BorrowingFilter{Status: "Borrowed"})
	require.NoError(t, err)
	assert.Len(t, open, 2)
}
