package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
	"github.com/ledgermart/ledgermart/internal/service"
)

// respondError maps protocol rejections and gateway errors to HTTP statuses.
// Actor errors arrive wrapped in bounce context, so errors.Is does the
// matching.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShopNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, market.ErrAccessDenied),
		errors.Is(err, market.ErrOnlySellerCanRefund),
		errors.Is(err, market.ErrInvalidSender):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, market.ErrOrderAlreadyCompleted),
		errors.Is(err, market.ErrItemRefunded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, market.ErrInsufficientPayment),
		errors.Is(err, ledger.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, market.ErrPriceNotSet),
		errors.Is(err, market.ErrItemNotSalable),
		errors.Is(err, ledger.ErrInvalidAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDeployNotConfirmed):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrFaucetDisabled),
		errors.Is(err, service.ErrDevTokensDisabled),
		errors.Is(err, service.ErrArchiveDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func pathAddress(c *gin.Context, param string) (ledger.Address, bool) {
	addr, err := ledger.ParseAddress(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return ledger.ZeroAddress, false
	}
	return addr, true
}
