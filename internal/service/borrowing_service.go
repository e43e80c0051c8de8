package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	msgBorrowRecorded = "Borrowing recorded successfully"
	msgItemReturned   = "Item returned successfully"
)

// BorrowingService moves units between the shelf and borrowers. Each call is
// one transaction: the borrowing row, the product quantity and the stock
// movement either all commit or none do.
type BorrowingService interface {
	Borrow(ctx context.Context, actorID uuid.UUID, req dto.BorrowRequest) (*dto.BorrowingResult, error)
	Return(ctx context.Context, actorID uuid.UUID, borrowingID uuid.UUID) (*dto.BorrowingResult, error)
	List(ctx context.Context, filter dto.BorrowingFilter) ([]dto.BorrowingResponse, error)
}

type borrowingService struct {
	products   repository.ProductRepository
	borrowings repository.BorrowingRepository
	movements  repository.StockMovementRepository
	cache      *infra.Cache
	alerts     StockAlerter
	now        func() time.Time
}

// NewBorrowingService wires the transaction manager. cache and alerts may be
// nil when redis is not configured.
func NewBorrowingService(
	products repository.ProductRepository,
	borrowings repository.BorrowingRepository,
	movements repository.StockMovementRepository,
	cache *infra.Cache,
	alerts StockAlerter,
) BorrowingService {
	return &borrowingService{
		products:   products,
		borrowings: borrowings,
		movements:  movements,
		cache:      cache,
		alerts:     alerts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ── Borrow ────────────────────────────────────────────────────────────────────
//   1. Lock + read product (NotFound if missing)
//   2. Reject quantity > stock_qty (InsufficientStock)
//   3. Insert borrowing, decrement stock, recompute status, append movement
//   4. COMMIT, then invalidate reports and queue a low stock alert if needed

func (s *borrowingService) Borrow(ctx context.Context, actorID uuid.UUID, req dto.BorrowRequest) (*dto.BorrowingResult, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: product_id must be a UUID", apierror.ErrValidation)
	}
	borrower := strings.TrimSpace(req.BorrowerName)
	if borrower == "" {
		return nil, fmt.Errorf("%w: borrower_name is required", apierror.ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", apierror.ErrValidation)
	}

	var (
		record  model.Borrowing
		product *model.Product
	)
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return err
		}
		if req.Quantity > p.StockQty {
			return fmt.Errorf("%w: requested %d, available %d", apierror.ErrInsufficientStock, req.Quantity, p.StockQty)
		}

		record = model.Borrowing{
			ProductID:    p.ID,
			BorrowerName: borrower,
			Quantity:     req.Quantity,
			Status:       model.BorrowingBorrowed,
			BorrowDate:   s.now(),
		}
		if err := s.borrowings.CreateTx(tx, &record); err != nil {
			return err
		}

		before := p.StockQty
		if err := s.products.SetStockTx(tx, p, before-req.Quantity); err != nil {
			return err
		}
		if err := s.movements.CreateTx(tx, &model.StockMovement{
			ProductID:   p.ID,
			Kind:        model.MovementBorrow,
			Delta:       -req.Quantity,
			QtyBefore:   before,
			QtyAfter:    p.StockQty,
			ReferenceID: &record.ID,
			ActorID:     actorRef(actorID),
			Note:        "borrowed by " + borrower,
		}); err != nil {
			return err
		}
		product = p
		return nil
	})
	recordOutcome("borrow", txErr)
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("borrowing_id", record.ID.String()).
		Str("product_id", product.ID.String()).
		Int("quantity", record.Quantity).
		Int("stock_qty", product.StockQty).
		Msg("borrow recorded")

	s.afterStockWrite(ctx, product, "borrow")

	record.Product = product
	return &dto.BorrowingResult{Message: msgBorrowRecorded, Borrowing: toBorrowingResponse(&record)}, nil
}

// ── Return ────────────────────────────────────────────────────────────────────
//   1. Lock + read borrowing (NotFound / AlreadyReturned)
//   2. Mark Returned with return_date = now
//   3. Lock + read product, add the borrowed quantity back, recompute status
// The quantity added back is the record's own immutable quantity; no upper
// bound is enforced against the originally provisioned total.

func (s *borrowingService) Return(ctx context.Context, actorID uuid.UUID, borrowingID uuid.UUID) (*dto.BorrowingResult, error) {
	var (
		record  *model.Borrowing
		product *model.Product
	)
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		b, err := s.borrowings.FindByIDForUpdateTx(tx, borrowingID)
		if err != nil {
			return err
		}
		if b.IsReturned() {
			return fmt.Errorf("%w: %s", apierror.ErrAlreadyReturned, b.ID)
		}
		if err := s.borrowings.MarkReturnedTx(tx, b, s.now()); err != nil {
			return err
		}

		p, err := s.products.FindByIDForUpdateTx(tx, b.ProductID)
		if err != nil {
			return err
		}
		before := p.StockQty
		if err := s.products.SetStockTx(tx, p, before+b.Quantity); err != nil {
			return err
		}
		if err := s.movements.CreateTx(tx, &model.StockMovement{
			ProductID:   p.ID,
			Kind:        model.MovementReturn,
			Delta:       b.Quantity,
			QtyBefore:   before,
			QtyAfter:    p.StockQty,
			ReferenceID: &b.ID,
			ActorID:     actorRef(actorID),
			Note:        "returned by " + b.BorrowerName,
		}); err != nil {
			return err
		}
		record, product = b, p
		return nil
	})
	recordOutcome("return", txErr)
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("borrowing_id", record.ID.String()).
		Str("product_id", product.ID.String()).
		Int("quantity", record.Quantity).
		Int("stock_qty", product.StockQty).
		Msg("item returned")

	// A return only adds stock, so it never raises an alert.
	s.cache.Delete(ctx, stockReportKeys...)

	record.Product = product
	return &dto.BorrowingResult{Message: msgItemReturned, Borrowing: toBorrowingResponse(record)}, nil
}

func (s *borrowingService) List(ctx context.Context, filter dto.BorrowingFilter) ([]dto.BorrowingResponse, error) {
	rows, err := s.borrowings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BorrowingResponse, len(rows))
	for i := range rows {
		resp[i] = toBorrowingResponse(&rows[i])
	}
	return resp, nil
}

// afterStockWrite runs post-commit side effects. Neither can fail the request.
func (s *borrowingService) afterStockWrite(ctx context.Context, p *model.Product, cause string) {
	s.cache.Delete(ctx, stockReportKeys...)
	notifyLowStock(ctx, s.alerts, p, cause)
}

func notifyLowStock(ctx context.Context, alerts StockAlerter, p *model.Product, cause string) {
	if alerts == nil || !p.Status.NeedsAttention() {
		return
	}
	err := alerts.EnqueueLowStock(ctx, dto.LowStockAlert{
		ProductID:   p.ID.String(),
		ProductName: p.Name,
		StockQty:    p.StockQty,
		Status:      string(p.Status),
		Cause:       cause,
	})
	if err != nil {
		log.Warn().Err(err).Str("product_id", p.ID.String()).Msg("low stock alert not queued")
	}
}

func recordOutcome(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, apierror.ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, apierror.ErrInsufficientStock):
		outcome = "insufficient_stock"
	case errors.Is(err, apierror.ErrAlreadyReturned):
		outcome = "already_returned"
	default:
		outcome = "error"
	}
	infra.BorrowingOps.WithLabelValues(op, outcome).Inc()
}

func actorRef(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
