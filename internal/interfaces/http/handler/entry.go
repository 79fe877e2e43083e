package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// EntryHandler handles manual ledger entry endpoints
type EntryHandler struct {
	BaseHandler
	service *ledgerapp.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(service *ledgerapp.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

// CreateEntry records a manual income or expense entry
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req ledgerapp.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	entry, err := h.service.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// CreateRecurring expands a recurring expense into monthly installment entries
func (h *EntryHandler) CreateRecurring(c *gin.Context) {
	var req ledgerapp.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	entries, err := h.service.CreateRecurring(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entries)
}

// GetEntry returns a single entry by ID
func (h *EntryHandler) GetEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// UpdateEntry replaces an entry's fields
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	var req ledgerapp.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	entry, err := h.service.UpdateEntry(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// DeleteEntry removes an entry
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListEntries returns entries matching the filter, newest first
func (h *EntryHandler) ListEntries(c *gin.Context) {
	var filter ledgerapp.EntryListFilter
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

	entries, total, err := h.service.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers ledger entry routes
func (h *EntryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/ledger/entries")
	{
		entries.GET("", h.ListEntries)
		entries.GET("/:id", h.GetEntry)
		entries.POST("", h.CreateEntry)
		entries.POST("/recurring", h.CreateRecurring)
		entries.PUT("/:id", h.UpdateEntry)
		entries.DELETE("/:id", h.DeleteEntry)
	}
}
