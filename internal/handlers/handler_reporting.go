package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
	"github.com/SscSPs/custodial_wallet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles the ledger query surface.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the ledger query routes. The caller is
// responsible for mounting rg behind the admin role check.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/stats", h.getStats)
		transactions.GET("/reference/:reference", h.getTransactionByReference)
		transactions.GET("/:id", h.getTransaction)
	}
	rg.GET("/accounts/:id/stats", h.getAccountStats)
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Retrieves a filtered, paginated ledger page, newest first
// @Tags reporting
// @Produce  json
// @Param   accountID query string false "Filter by participant account ID"
// @Param   type query string false "Filter by type" Enums(INTERNAL_TRANSFER, ADMIN_CREDIT, EXTERNAL_TRANSFER)
// @Param   status query string false "Filter by status" Enums(PENDING, COMPLETED, FAILED)
// @Param   from query string false "Inclusive from date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive to date (YYYY-MM-DD)"
// @Param   page query int false "Page number (1-based)"
// @Param   limit query int false "Page size"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /admin/transactions [get]
func (h *reportingHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reportingService.ListTransactions(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a ledger entry by ID
// @Tags reporting
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /admin/transactions/{id} [get]
func (h *reportingHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.reportingService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getTransactionByReference godoc
// @Summary Get a ledger entry by reference
// @Description Retrieves a ledger entry by its idempotency reference, for reconciliation
// @Tags reporting
// @Produce  json
// @Param   reference path string true "Transaction reference"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /admin/transactions/reference/{reference} [get]
func (h *reportingHandler) getTransactionByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reference := c.Param("reference")

	txn, err := h.reportingService.GetTransactionByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction by reference", slog.String("reference", reference), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getStats godoc
// @Summary Get ledger statistics
// @Description Aggregates the ledger entries matching the filter
// @Tags reporting
// @Produce  json
// @Param   accountID query string false "Filter by participant account ID"
// @Param   type query string false "Filter by type" Enums(INTERNAL_TRANSFER, ADMIN_CREDIT, EXTERNAL_TRANSFER)
// @Param   status query string false "Filter by status" Enums(PENDING, COMPLETED, FAILED)
// @Param   from query string false "Inclusive from date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive to date (YYYY-MM-DD)"
// @Success 200 {object} dto.TransactionStatsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to aggregate stats"
// @Security BearerAuth
// @Router /admin/transactions/stats [get]
func (h *reportingHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	stats, err := h.reportingService.GetStats(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to aggregate stats", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate stats"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionStatsResponse(stats))
}

// getAccountStats godoc
// @Summary Get per-account ledger statistics
// @Description Aggregates one account's ledger activity plus sent/received totals
// @Tags reporting
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to aggregate account stats"
// @Security BearerAuth
// @Router /admin/accounts/{id}/stats [get]
func (h *reportingHandler) getAccountStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	stats, err := h.reportingService.GetAccountStats(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to aggregate account stats", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate account stats"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountStatsResponse(stats))
}
