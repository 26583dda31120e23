package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/middleware"
	"github.com/ledgermart/ledgermart/internal/service"
)

type UserHandler struct {
	userService   *service.UserService
	walletService *service.WalletService
	authService   *service.AuthService
}

func NewUserHandler(userService *service.UserService, walletService *service.WalletService, authService *service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, walletService: walletService, authService: authService}
}

func (h *UserHandler) DevToken(c *gin.Context) {
	var req dto.DevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.authService.DevToken(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), middleware.GetWallet(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ChangeUserData(c *gin.Context) {
	var req dto.ChangeUserDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.ChangeUserData(c.Request.Context(), middleware.GetWallet(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Faucet(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	wallet, err := h.walletService.Faucet(addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *UserHandler) Balance(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.walletService.Balance(addr))
}
