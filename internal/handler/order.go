package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/middleware"
	"github.com/ledgermart/ledgermart/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) MakeOrder(c *gin.Context) {
	shop, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	var req dto.MakeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.MakeOrder(c.Request.Context(), middleware.GetWallet(c), shop, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Pay(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.Pay(c.Request.Context(), middleware.GetWallet(c), addr, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Refund(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	order, err := h.orderService.Refund(c.Request.Context(), middleware.GetWallet(c), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListShopOrders(c *gin.Context) {
	shop, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	orders, err := h.orderService.ListShopOrders(c.Request.Context(), shop)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
