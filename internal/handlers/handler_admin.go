package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/custodial_wallet_app/internal/apperrors"
	portssvc "github.com/SscSPs/custodial_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/custodial_wallet_app/internal/dto"
	"github.com/SscSPs/custodial_wallet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler handles the administrative surface. All routes require the
// admin role claim.
type adminHandler struct {
	adminService portssvc.AdminSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(as portssvc.AdminSvcFacade) *adminHandler {
	return &adminHandler{adminService: as}
}

// registerAdminRoutes registers the administrative routes. The caller is
// responsible for mounting rg behind the admin role check.
func registerAdminRoutes(rg *gin.RouterGroup, adminService portssvc.AdminSvcFacade) {
	h := newAdminHandler(adminService)

	rg.POST("/credit", h.creditAccount)
	rg.POST("/accounts/:id/verify-identity", h.verifyIdentity)
	rg.POST("/accounts/:id/freeze", h.freezeAccount)
	rg.POST("/accounts/:id/unfreeze", h.unfreezeAccount)
	rg.DELETE("/accounts/:id", h.deleteAccount)
	rg.GET("/audit", h.listAuditEntries)
}

// creditAccount godoc
// @Summary Credit an account
// @Description Credits an account out of band, recording a paired audit-log entry
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreditAccountRequest true "Credit details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to credit account"
// @Security BearerAuth
// @Router /admin/credit [post]
func (h *adminHandler) creditAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreditAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreditAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.adminService.CreditAccount(c.Request.Context(), actorID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to credit account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to credit account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// verifyIdentity godoc
// @Summary Verify an account holder's identity
// @Description Marks an account as identity-verified and records the actor in the audit log
// @Tags admin
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to verify identity"
// @Security BearerAuth
// @Router /admin/accounts/{id}/verify-identity [post]
func (h *adminHandler) verifyIdentity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountID := c.Param("id")
	account, err := h.adminService.VerifyIdentity(c.Request.Context(), actorID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to verify identity", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify identity"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// freezeAccount godoc
// @Summary Freeze an account
// @Description Blocks the account from initiating transfers; it can still receive
// @Tags admin
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update freeze state"
// @Security BearerAuth
// @Router /admin/accounts/{id}/freeze [post]
func (h *adminHandler) freezeAccount(c *gin.Context) {
	h.setFrozen(c, true)
}

// unfreezeAccount godoc
// @Summary Unfreeze an account
// @Description Restores the account's ability to initiate transfers
// @Tags admin
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update freeze state"
// @Security BearerAuth
// @Router /admin/accounts/{id}/unfreeze [post]
func (h *adminHandler) unfreezeAccount(c *gin.Context) {
	h.setFrozen(c, false)
}

func (h *adminHandler) setFrozen(c *gin.Context, frozen bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountID := c.Param("id")
	account, err := h.adminService.SetAccountFrozen(c.Request.Context(), actorID, accountID, frozen)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to update freeze state", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update freeze state"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes an account and its ledger history; refused while the account holds a balance or has pending entries
// @Tags admin
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "Account deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account has pending transactions"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Security BearerAuth
// @Router /admin/accounts/{id} [delete]
func (h *adminHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountID := c.Param("id")
	if err := h.adminService.DeleteAccount(c.Request.Context(), actorID, accountID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listAuditEntries godoc
// @Summary List the caller's audit trail
// @Description Retrieves a paginated audit trail of the calling administrator's actions
// @Tags admin
// @Produce  json
// @Param   page query int false "Page number (1-based)"
// @Param   limit query int false "Page size"
// @Success 200 {object} dto.ListAuditEntriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to list audit entries"
// @Security BearerAuth
// @Router /admin/audit [get]
func (h *adminHandler) listAuditEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := h.adminService.ListAuditEntries(c.Request.Context(), actorID, page, limit)
	if err != nil {
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
