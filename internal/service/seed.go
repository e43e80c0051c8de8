package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCategories are created by `imsctl seed` when missing.
var DefaultCategories = []string{
	"IT Equipment",
	"Laboratory Apparatus",
	"Sports Equipment",
	"Office Supplies",
	"Audio Visual",
}

// AdminSeed describes the first administrator account.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// SeedResult reports what a seed run actually inserted.
type SeedResult struct {
	CategoriesCreated int
	AdminCreated      bool
}

// Seed inserts the default categories and the admin account. Running it
// again changes nothing; existing rows are left untouched. Roles are
// seeded by the initial migration.
func Seed(ctx context.Context, users repository.UserRepository, roles repository.RoleRepository, categories repository.CategoryRepository, admin AdminSeed) (SeedResult, error) {
	var res SeedResult

	for _, name := range DefaultCategories {
		err := categories.Create(ctx, &model.Category{Name: name})
		switch {
		case err == nil:
			res.CategoriesCreated++
		case errors.Is(err, apierror.ErrConflict):
		default:
			return res, fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	email := normalizeEmail(admin.Email)
	if email == "" || admin.Password == "" {
		return res, fmt.Errorf("%w: admin email and password are required", apierror.ErrValidation)
	}
	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Info().Str("email", email).Msg("admin user already exists")
		return res, nil
	} else if !errors.Is(err, apierror.ErrNotFound) {
		return res, err
	}

	role, err := roles.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		return res, fmt.Errorf("admin role missing, run migrations first: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), BcryptCost)
	if err != nil {
		return res, err
	}
	name := strings.TrimSpace(admin.Name)
	if name == "" {
		name = "System Admin"
	}
	if err := users.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Status:       model.UserActive,
	}); err != nil {
		return res, err
	}
	res.AdminCreated = true
	log.Info().Str("email", email).Msg("admin user created")
	return res, nil
}
