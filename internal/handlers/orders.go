package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/gastropro/internal/services"
	"github.com/gastropro/gastropro/pkg/response"
)

// OrderHandler exposes HTTP endpoints for customer orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler constructs an order handler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List returns orders newest first, optionally filtered by status.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), services.ListOrdersInput{
		Status:     strings.TrimSpace(c.Query("status")),
		ActiveOnly: parseBoolQuery(c, "active_only"),
		Limit:      parseIntQuery(c, "limit", 0),
		Offset:     parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// Get returns one order with its line items.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

type orderLineRequest struct {
	MenuItemID          string `json:"menu_item_id" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

type createOrderRequest struct {
	TableNumber  int                `json:"table_number" validate:"min=0"`
	CustomerName string             `json:"customer_name" validate:"max=120"`
	Items        []orderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// Create places a new order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	input := services.CreateOrderInput{
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, services.OrderLineInput{
			MenuItemID:          line.MenuItemID,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	order, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, order)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus transitions an order to a new status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// Delete removes an order and its line items.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
