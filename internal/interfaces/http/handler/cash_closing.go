package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	financeapp "github.com/retailbooks/backend/internal/application/finance"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// CashClosingHandler handles end-of-day cash reconciliation endpoints
type CashClosingHandler struct {
	BaseHandler
	service *financeapp.CashClosingService
}

// NewCashClosingHandler creates a new CashClosingHandler
func NewCashClosingHandler(service *financeapp.CashClosingService) *CashClosingHandler {
	return &CashClosingHandler{service: service}
}

// CloseDay closes the drawer for one date and branch. The operator
// performing the close is taken from the JWT, not the request body.
func (h *CashClosingHandler) CloseDay(c *gin.Context) {
	var req financeapp.CloseDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}
	req.ClosedBy = userID

	closing, err := h.service.CloseDay(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, closing)
}

// VerifyDay returns the same-day reconciliation view without closing
func (h *CashClosingHandler) VerifyDay(c *gin.Context) {
	date := c.Query("date")
	branch := c.Query("branch")
	if date == "" || branch == "" {
		h.BadRequest(c, "date and branch are required")
		return
	}

	verification, err := h.service.VerifyDay(c.Request.Context(), date, branch)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, verification)
}

// GetClosing returns a single closing by ID
func (h *CashClosingHandler) GetClosing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid closing ID")
		return
	}

	closing, err := h.service.GetClosing(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, closing)
}

// ListClosings returns closing history, newest first
func (h *CashClosingHandler) ListClosings(c *gin.Context) {
	var filter financeapp.ClosingListFilter
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

	closings, total, err := h.service.ListClosings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, closings, total, filter.Page, filter.PageSize)
}

// GetBranchHistory returns the full closing chain for one branch
func (h *CashClosingHandler) GetBranchHistory(c *gin.Context) {
	branch := c.Query("branch")
	if branch == "" {
		h.BadRequest(c, "branch is required")
		return
	}

	closings, err := h.service.GetBranchHistory(c.Request.Context(), branch, c.Query("from_date"), c.Query("to_date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, closings)
}

// DeleteClosing removes a closing. Later closings are not recomputed:
// each one snapshotted its opening balance at close time.
func (h *CashClosingHandler) DeleteClosing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid closing ID")
		return
	}

	if err := h.service.DeleteClosing(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers cash closing routes
func (h *CashClosingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	closings := rg.Group("/finance/cash-closings")
	{
		closings.GET("", h.ListClosings)
		closings.GET("/verify", h.VerifyDay)
		closings.GET("/history", h.GetBranchHistory)
		closings.GET("/:id", h.GetClosing)
		closings.POST("", h.CloseDay)
		closings.DELETE("/:id", h.DeleteClosing)
	}
}
