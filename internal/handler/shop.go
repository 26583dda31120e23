package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/middleware"
	"github.com/ledgermart/ledgermart/internal/service"
)

type ShopHandler struct {
	shopService *service.ShopService
}

func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), middleware.GetWallet(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shop)
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	shop, err := h.shopService.GetShop(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) UpdateShop(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop, err := h.shopService.UpdateShopInfo(c.Request.Context(), middleware.GetWallet(c), addr, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) ResolveShop(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.shopService.ResolveShop(addr))
}

func (h *ShopHandler) AddItem(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.shopService.AddItem(c.Request.Context(), middleware.GetWallet(c), addr, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ShopHandler) UpdateItem(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.shopService.UpdateItem(c.Request.Context(), middleware.GetWallet(c), addr, index, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShopHandler) SetItemPrice(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	var req dto.SetItemPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.shopService.SetItemPrice(c.Request.Context(), middleware.GetWallet(c), addr, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShopHandler) GetItem(c *gin.Context) {
	addr, ok := pathAddress(c, "addr")
	if !ok {
		return
	}
	item, err := h.shopService.GetItem(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
