package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	financeapp "github.com/retailbooks/backend/internal/application/finance"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// FinanceHandler handles the unified ledger feed, the dashboard summary
// and the income statement endpoints
type FinanceHandler struct {
	BaseHandler
	feedService      *financeapp.LedgerFeedService
	dashboardService *financeapp.DashboardService
	statementService *financeapp.IncomeStatementService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	feedService *financeapp.LedgerFeedService,
	dashboardService *financeapp.DashboardService,
	statementService *financeapp.IncomeStatementService,
) *FinanceHandler {
	return &FinanceHandler{
		feedService:      feedService,
		dashboardService: dashboardService,
		statementService: statementService,
	}
}

// GetFeed returns the unified ledger feed, newest first
func (h *FinanceHandler) GetFeed(c *gin.Context) {
	var req financeapp.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, err.Error())
		return
	}

	feed, err := h.feedService.GetFeed(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, feed)
}

// GetSummary returns the period aggregate with previous-period trend
func (h *FinanceHandler) GetSummary(c *gin.Context) {
	var req financeapp.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, err.Error())
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetIncomeStatement returns the income statement for a period and branch
func (h *FinanceHandler) GetIncomeStatement(c *gin.Context) {
	var req financeapp.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, err.Error())
		return
	}

	statement, err := h.statementService.GetStatement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// RegisterRoutes registers finance reporting routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	finance := rg.Group("/finance")
	{
		finance.GET("/feed", h.GetFeed)
		finance.GET("/summary", h.GetSummary)
		finance.GET("/income-statement", h.GetIncomeStatement)
	}
}
