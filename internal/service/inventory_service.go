package service

import (
	"bytes"
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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Export formats accepted by InventoryService.Export.
const (
	ExportCSV = "csv"
	ExportPDF = "pdf"
)

// ExportFile is a rendered report ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// InventoryService covers direct product CRUD. Every quantity write goes
// through Product.SetStock so status never drifts from stock_qty.
type InventoryService interface {
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Movements(ctx context.Context, id uuid.UUID, limit int) ([]dto.StockMovementResponse, error)
	Export(ctx context.Context, format string) (*ExportFile, error)
}

type inventoryService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.StockMovementRepository
	cache      *infra.Cache
	alerts     StockAlerter
}

func NewInventoryService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	movements repository.StockMovementRepository,
	cache *infra.Cache,
	alerts StockAlerter,
) InventoryService {
	return &inventoryService{
		products:   products,
		categories: categories,
		movements:  movements,
		cache:      cache,
		alerts:     alerts,
	}
}

func (s *inventoryService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = toProductResponse(&products[i])
	}
	return resp, nil
}

func (s *inventoryService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *inventoryService) Create(ctx context.Context, actorID uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error) {
	in, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	p := &model.Product{}
	in.applyTo(p)

	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.CreateTx(tx, p); err != nil {
			return err
		}
		return s.movements.CreateTx(tx, &model.StockMovement{
			ProductID: p.ID,
			Kind:      model.MovementInitial,
			Delta:     p.StockQty,
			QtyBefore: 0,
			QtyAfter:  p.StockQty,
			ActorID:   actorRef(actorID),
			Note:      "product created",
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("product_id", p.ID.String()).Int("stock_qty", p.StockQty).Msg("product created")
	s.afterStockWrite(ctx, p, "create")
	return s.Get(ctx, p.ID)
}

func (s *inventoryService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error) {
	in, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	var updated *model.Product
	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindByIDForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		before := p.StockQty
		in.applyTo(p)
		if err := s.products.UpdateTx(tx, p); err != nil {
			return err
		}
		if p.StockQty != before {
			if err := s.movements.CreateTx(tx, &model.StockMovement{
				ProductID: p.ID,
				Kind:      model.MovementAdjustment,
				Delta:     p.StockQty - before,
				QtyBefore: before,
				QtyAfter:  p.StockQty,
				ActorID:   actorRef(actorID),
				Note:      "manual adjustment",
			}); err != nil {
				return err
			}
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("product_id", id.String()).Int("stock_qty", updated.StockQty).Msg("product updated")
	s.afterStockWrite(ctx, updated, "update")
	return s.Get(ctx, id)
}

// Delete removes the product and, in the same transaction, its borrowings.
func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		return s.products.DeleteTx(tx, id)
	})
	if err != nil {
		return err
	}
	log.Info().Str("product_id", id.String()).Msg("product deleted")
	s.cache.Delete(ctx, stockReportKeys...)
	return nil
}

func (s *inventoryService) Movements(ctx context.Context, id uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.movements.ListByProduct(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockMovementResponse, len(rows))
	for i, m := range rows {
		resp[i] = dto.StockMovementResponse{
			ID:        m.ID.String(),
			ProductID: m.ProductID.String(),
			Kind:      string(m.Kind),
			Delta:     m.Delta,
			QtyBefore: m.QtyBefore,
			QtyAfter:  m.QtyAfter,
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
		}
		if m.ReferenceID != nil {
			ref := m.ReferenceID.String()
			resp[i].ReferenceID = &ref
		}
	}
	return resp, nil
}

func (s *inventoryService) Export(ctx context.Context, format string) (*ExportFile, error) {
	products, err := s.products.List(ctx, dto.ProductFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stamp := now.Format("2006-01-02")
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "", ExportCSV:
		if err := infra.WriteInventoryCSV(&buf, products); err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    "inventory_report_" + stamp + ".csv",
			ContentType: "text/csv; charset=utf-8",
			Content:     buf.Bytes(),
		}, nil
	case ExportPDF:
		if err := infra.WriteInventoryPDF(&buf, products, now); err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    "inventory_report_" + stamp + ".pdf",
			ContentType: "application/pdf",
			Content:     buf.Bytes(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q (csv, pdf)", apierror.ErrValidation, format)
	}
}

// productInput is a validated ProductRequest.
type productInput struct {
	name       string
	categoryID *uuid.UUID
	price      decimal.Decimal
	stockQty   int
}

// applyTo copies the input onto p; the status is always derived from the
// submitted quantity.
func (in productInput) applyTo(p *model.Product) {
	p.Name = in.name
	p.CategoryID = in.categoryID
	p.Category = nil
	p.Price = in.price
	p.SetStock(in.stockQty)
}

// resolve validates req and checks the category exists. It runs before any
// transaction is opened. Price defaults to zero when absent.
func (s *inventoryService) resolve(ctx context.Context, req dto.ProductRequest) (productInput, error) {
	var in productInput
	in.name = strings.TrimSpace(req.Name)
	if in.name == "" {
		return in, fmt.Errorf("%w: name is required", apierror.ErrValidation)
	}
	if req.StockQty == nil || *req.StockQty < 0 {
		return in, fmt.Errorf("%w: stock_qty must be a non-negative integer", apierror.ErrValidation)
	}
	in.stockQty = *req.StockQty

	in.price = decimal.Zero
	if req.Price != nil {
		if req.Price.IsNegative() {
			return in, fmt.Errorf("%w: price must not be negative", apierror.ErrValidation)
		}
		in.price = req.Price.Round(2)
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return in, fmt.Errorf("%w: category_id must be a UUID", apierror.ErrValidation)
		}
		if _, err := s.categories.FindByID(ctx, id); err != nil {
			if errors.Is(err, apierror.ErrNotFound) {
				return in, fmt.Errorf("%w: category not found", apierror.ErrValidation)
			}
			return in, err
		}
		in.categoryID = &id
	}
	return in, nil
}

func (s *inventoryService) afterStockWrite(ctx context.Context, p *model.Product, cause string) {
	s.cache.Delete(ctx, stockReportKeys...)
	notifyLowStock(ctx, s.alerts, p, cause)
}
