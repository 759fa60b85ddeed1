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

// walletHandler handles the holder-facing wallet surface. The authenticated
// token subject is the caller's account ID.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// RegisterWalletRoutes registers routes related to the caller's own wallet.
func RegisterWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallet := rg.Group("/wallet")
	{
		wallet.GET("/balance", h.getBalance)
		wallet.POST("/transfer", h.transfer)
		wallet.POST("/external-transfer", h.externalTransfer)
	}
}

// transferStatusFromErr maps transfer-engine errors to HTTP statuses.
func transferStatusFromErr(err error) (int, bool) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrSelfTransfer):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, apperrors.ErrAccountFrozen):
		return http.StatusForbidden, true
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, apperrors.ErrTransferFailed):
		return http.StatusConflict, true
	}
	return 0, false
}

// getBalance godoc
// @Summary Get the caller's balance
// @Description Returns the current balance alongside recent ledger activity
// @Tags wallet
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Security BearerAuth
// @Router /wallet/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.walletService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, balance)
}

// transfer godoc
// @Summary Transfer money to another account
// @Description Atomically moves the given amount from the caller's account to the receiver
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or self transfer"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Account frozen"
// @Failure 404 {object} map[string]string "Receiver not found"
// @Failure 409 {object} map[string]string "Transfer failed"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to transfer"
// @Security BearerAuth
// @Router /wallet/transfer [post]
func (h *walletHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.walletService.Transfer(c.Request.Context(), accountID, req)
	if err != nil {
		if status, ok := transferStatusFromErr(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// externalTransfer godoc
// @Summary Transfer money to an external bank account
// @Description Debits the caller's account for an outbound bank transfer
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   transfer body dto.ExternalTransferRequest true "External transfer details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Account frozen"
// @Failure 409 {object} map[string]string "Transfer failed"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to transfer"
// @Security BearerAuth
// @Router /wallet/external-transfer [post]
func (h *walletHandler) externalTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ExternalTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExternalTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.walletService.ExternalTransfer(c.Request.Context(), accountID, req)
	if err != nil {
		if status, ok := transferStatusFromErr(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to transfer externally", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
