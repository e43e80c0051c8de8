package handler

import (
	"net/http"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /api/categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/categories [post]
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
