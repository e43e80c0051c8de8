package handler

import (
	"fmt"
	"net/http"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List godoc
// @Summary List products
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or category contains"
// @Param category_id query string false "Category ID"
// @Param status query string false "Stock status"
// @Success 200 {array} dto.ProductResponse
// @Router /api/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get product
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create product
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProductRequest true "Product"
// @Success 201 {object} dto.ProductResponse
// @Router /api/inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update product
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body dto.ProductRequest true "Product"
// @Success 200 {object} dto.ProductResponse
// @Router /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete product and its borrowings
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} dto.MessageResponse
// @Router /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}

// Movements godoc
// @Summary Stock ledger of a product
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param limit query int false "Max rows (default 100)"
// @Success 200 {array} dto.StockMovementResponse
// @Router /api/inventory/{id}/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Movements(c.Request.Context(), id, queryInt(c, "limit", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary Download inventory report
// @Tags inventory
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /api/inventory/export [get]
func (h *InventoryHandler) Export(c *gin.Context) {
	file, err := h.svc.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
