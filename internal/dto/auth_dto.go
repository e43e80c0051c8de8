package dto

// ── Auth ──────────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// ── Users ─────────────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=Admin Staff"`
}

type UpdateUserRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Email  string `json:"email" validate:"required,email,max=150"`
	Role   string `json:"role" validate:"required,oneof=Admin Staff"`
	Status string `json:"status" validate:"required,oneof=Active Inactive"`
}

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// ── Roles ─────────────────────────────────────────────────────────────────────

type UpdatePermissionsRequest struct {
	RoleName  string `json:"role_name" validate:"required,oneof=Admin Staff"`
	Analytics bool   `json:"analytics"`
	Inventory bool   `json:"inventory"`
}

type RoleResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	CanAccessAnalytics bool   `json:"can_access_analytics"`
	CanAccessInventory bool   `json:"can_access_inventory"`
}
