package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
)

type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description}
	}
	return resp, nil
}

// Create rejects duplicate names with ErrConflict via the unique index.
func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apierror.ErrValidation)
	}
	c := &model.Category{Name: name, Description: req.Description}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description}, nil
}
