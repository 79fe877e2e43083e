package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tradeapp "github.com/retailbooks/backend/internal/application/trade"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// SaleHandler handles sale (checkout) endpoints
type SaleHandler struct {
	BaseHandler
	service *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// CompleteSaleRequest carries the payment splits for completing a pending sale
type CompleteSaleRequest struct {
	Payments []tradeapp.PaymentSplitRequest `json:"payments" binding:"required,min=1"`
}

// CancelSaleRequest carries the cancellation reason
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// CreateSale records a checkout
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	sale, err := h.service.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// CompleteSale settles a pending sale with its payment splits
func (h *SaleHandler) CompleteSale(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	sale, err := h.service.CompleteSale(c.Request.Context(), id, req.Payments)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// CancelSale cancels a sale so it no longer feeds the ledger
func (h *SaleHandler) CancelSale(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	sale, err := h.service.CancelSale(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// CorrectSale replaces the items and payments of a completed sale
func (h *SaleHandler) CorrectSale(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req tradeapp.CorrectSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	sale, err := h.service.CorrectSale(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetSale returns a single sale by ID
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ListSales returns sales matching the filter, newest first
func (h *SaleHandler) ListSales(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	sales, total, err := h.service.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.ListSales)
		sales.GET("/:id", h.GetSale)
		sales.POST("", h.CreateSale)
		sales.POST("/:id/complete", h.CompleteSale)
		sales.POST("/:id/cancel", h.CancelSale)
		sales.PUT("/:id", h.CorrectSale)
	}
}
