package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/gastropro/internal/services"
	"github.com/gastropro/gastropro/pkg/response"
)

// MenuHandler exposes HTTP endpoints for the menu catalogue.
type MenuHandler struct {
	service *services.MenuService
}

// NewMenuHandler constructs a menu handler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// List returns menu items, optionally filtered by category or active state.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), services.ListMenuInput{
		Category:   strings.TrimSpace(c.Query("category")),
		ActiveOnly: parseBoolQuery(c, "active_only"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// Get returns one menu item.
func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// Categories returns the distinct menu categories.
func (h *MenuHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, categories)
}

type createMenuItemRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	Category    string  `json:"category" validate:"max=64"`
	ImagePath   string  `json:"image_path"`
	Tags        string  `json:"tags"`
	IsActive    *bool   `json:"is_active"`
}

// Create adds a new menu item.
func (h *MenuHandler) Create(c *gin.Context) {
	var req createMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), services.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImagePath:   req.ImagePath,
		Tags:        req.Tags,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item)
}

type updateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImagePath   *string  `json:"image_path"`
	Tags        *string  `json:"tags"`
	IsActive    *bool    `json:"is_active"`
}

// Update applies a partial update to a menu item.
func (h *MenuHandler) Update(c *gin.Context) {
	var req updateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), services.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImagePath:   req.ImagePath,
		Tags:        req.Tags,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// Delete removes a menu item.
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
