package handler

import (
	"net/http"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	"github.com/gin-gonic/gin"
)

type BorrowingsHandler struct{ svc service.BorrowingService }

func NewBorrowingsHandler(svc service.BorrowingService) *BorrowingsHandler {
	return &BorrowingsHandler{svc: svc}
}

// List godoc
// @Summary List borrowings, newest first
// @Tags borrowings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Borrowed or Returned"
// @Param product_id query string false "Product ID"
// @Success 200 {array} dto.BorrowingResponse
// @Router /api/borrowings [get]
func (h *BorrowingsHandler) List(c *gin.Context) {
	var filter dto.BorrowingFilter
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

// Borrow godoc
// @Summary Lend units of a product
// @Tags borrowings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BorrowRequest true "Borrowing"
// @Success 201 {object} dto.BorrowingResult
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError "Insufficient stock"
// @Router /api/borrowings [post]
func (h *BorrowingsHandler) Borrow(c *gin.Context) {
	var req dto.BorrowRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Borrow(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Return godoc
// @Summary Return a borrowing
// @Tags borrowings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Borrowing ID"
// @Success 200 {object} dto.BorrowingResult
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError "Already returned"
// @Router /api/borrowings/{id}/return [put]
func (h *BorrowingsHandler) Return(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Return(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
