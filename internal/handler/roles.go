package handler

import (
	"net/http"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	"github.com/gin-gonic/gin"
)

type RolesHandler struct{ svc service.RoleService }

func NewRolesHandler(svc service.RoleService) *RolesHandler { return &RolesHandler{svc: svc} }

// List godoc
// @Summary List roles with their capabilities
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.RoleResponse
// @Router /api/roles [get]
func (h *RolesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePermissions godoc
// @Summary Update role capabilities
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdatePermissionsRequest true "Capabilities"
// @Success 200 {object} dto.MessageResponse
// @Router /api/roles/update-permissions [post]
func (h *RolesHandler) UpdatePermissions(c *gin.Context) {
	var req dto.UpdatePermissionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdatePermissions(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Permissions updated successfully"})
}
