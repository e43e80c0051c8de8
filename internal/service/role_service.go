package service

import (
	"context"
	"fmt"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
)

// RoleService manages the capability table attached to each role.
type RoleService interface {
	List(ctx context.Context) ([]dto.RoleResponse, error)
	UpdatePermissions(ctx context.Context, req dto.UpdatePermissionsRequest) error
	// HasCapability is the resolver behind middleware.RequireCapability.
	HasCapability(ctx context.Context, role string, capability model.Capability) (bool, error)
}

type roleService struct {
	repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RoleResponse, len(roles))
	for i, r := range roles {
		resp[i] = dto.RoleResponse{
			ID:                 r.ID.String(),
			Name:               string(r.Name),
			CanAccessAnalytics: r.CanAccessAnalytics,
			CanAccessInventory: r.CanAccessInventory,
		}
	}
	return resp, nil
}

func (s *roleService) UpdatePermissions(ctx context.Context, req dto.UpdatePermissionsRequest) error {
	name := model.RoleName(req.RoleName)
	if !name.Valid() {
		return fmt.Errorf("%w: unknown role %q", apierror.ErrValidation, req.RoleName)
	}
	return s.repo.UpdatePermissions(ctx, name, req.Analytics, req.Inventory)
}

// HasCapability resolves the role's flags from the database on every call so
// permission changes apply to tokens that are already issued.
func (s *roleService) HasCapability(ctx context.Context, role string, capability model.Capability) (bool, error) {
	name := model.RoleName(role)
	if !name.Valid() {
		return false, nil
	}
	if name == model.RoleAdmin {
		return true, nil
	}
	r, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return false, err
	}
	return r.Allows(capability), nil
}
