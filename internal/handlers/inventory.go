package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/gastropro/internal/services"
	"github.com/gastropro/gastropro/pkg/response"
)

// InventoryHandler exposes HTTP endpoints for stock management.
type InventoryHandler struct {
	service *services.InventoryService
}

// NewInventoryHandler constructs an inventory handler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// List returns inventory items, optionally filtered by category or low stock.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), services.ListInventoryInput{
		Category: strings.TrimSpace(c.Query("category")),
		LowOnly:  parseBoolQuery(c, "low_only"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// Get returns one inventory item.
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

type createInventoryItemRequest struct {
	Name          string   `json:"name" validate:"required,max=120"`
	Category      string   `json:"category" validate:"max=64"`
	CurrentStock  float64  `json:"current_stock" validate:"min=0"`
	Unit          string   `json:"unit" validate:"max=32"`
	MinimumStock  float64  `json:"minimum_stock" validate:"min=0"`
	Supplier      string   `json:"supplier"`
	IsAlcohol     bool     `json:"is_alcohol"`
	AlcoholType   *string  `json:"alcohol_type"`
	AlcoholVolume *float64 `json:"alcohol_volume"`
}

// Create adds a new inventory item.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req createInventoryItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), services.InventoryItemInput{
		Name:          req.Name,
		Category:      req.Category,
		CurrentStock:  req.CurrentStock,
		Unit:          req.Unit,
		MinimumStock:  req.MinimumStock,
		Supplier:      req.Supplier,
		IsAlcohol:     req.IsAlcohol,
		AlcoholType:   req.AlcoholType,
		AlcoholVolume: req.AlcoholVolume,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item)
}

type updateInventoryItemRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	CurrentStock  *float64 `json:"current_stock"`
	Unit          *string  `json:"unit"`
	MinimumStock  *float64 `json:"minimum_stock"`
	Supplier      *string  `json:"supplier"`
	IsAlcohol     *bool    `json:"is_alcohol"`
	AlcoholType   *string  `json:"alcohol_type"`
	AlcoholVolume *float64 `json:"alcohol_volume"`
}

// Update applies a partial update to an inventory item.
func (h *InventoryHandler) Update(c *gin.Context) {
	var req updateInventoryItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), services.InventoryItemUpdate{
		Name:          req.Name,
		Category:      req.Category,
		CurrentStock:  req.CurrentStock,
		Unit:          req.Unit,
		MinimumStock:  req.MinimumStock,
		Supplier:      req.Supplier,
		IsAlcohol:     req.IsAlcohol,
		AlcoholType:   req.AlcoholType,
		AlcoholVolume: req.AlcoholVolume,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

type adjustStockRequest struct {
	Delta float64 `json:"delta" validate:"required"`
}

// AdjustStock changes the stock level by a signed delta.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.service.AdjustStock(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// Delete removes an inventory item.
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
