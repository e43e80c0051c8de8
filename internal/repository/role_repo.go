package repository

import (
	"context"

	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	List(ctx context.Context) ([]model.Role, error)
	FindByName(ctx context.Context, name model.RoleName) (*model.Role, error)
	UpdatePermissions(ctx context.Context, name model.RoleName, analytics, inventory bool) error
}

type roleRepo struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &roleRepo{db: db} }

func (r *roleRepo) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByName(ctx context.Context, name model.RoleName) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error; err != nil {
		return nil, classify(err, "role")
	}
	return &role, nil
}

func (r *roleRepo) UpdatePermissions(ctx context.Context, name model.RoleName, analytics, inventory bool) error {
	// Look the row up first: MySQL reports zero affected rows for an update
	// that leaves the flags unchanged.
	role, err := r.FindByName(ctx, name)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(role).Updates(map[string]interface{}{
		"can_access_analytics": analytics,
		"can_access_inventory": inventory,
	}).Error
}
