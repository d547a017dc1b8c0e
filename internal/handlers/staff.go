package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/gastropro/internal/services"
	"github.com/gastropro/gastropro/pkg/response"
)

// StaffHandler exposes HTTP endpoints for staff management.
type StaffHandler struct {
	service *services.StaffService
}

// NewStaffHandler constructs a staff handler.
func NewStaffHandler(service *services.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

// List returns staff members, optionally filtered by position or active state.
func (h *StaffHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), services.ListStaffInput{
		Position:   strings.TrimSpace(c.Query("position")),
		ActiveOnly: parseBoolQuery(c, "active_only"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, members)
}

// Get returns one staff member.
func (h *StaffHandler) Get(c *gin.Context) {
	member, err := h.service.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, member)
}

type createStaffMemberRequest struct {
	Name         string     `json:"name" validate:"required,max=120"`
	Position     string     `json:"position" validate:"max=64"`
	Email        string     `json:"email" validate:"required,email"`
	Phone        string     `json:"phone" validate:"max=32"`
	HireDate     *time.Time `json:"hire_date"`
	IsActive     *bool      `json:"is_active"`
	ProfileImage string     `json:"profile_image"`
}

// Create adds a new staff member.
func (h *StaffHandler) Create(c *gin.Context) {
	var req createStaffMemberRequest
	if !bindAndValidate(c, &req) {
		return
	}

	member, err := h.service.Create(c.Request.Context(), services.StaffMemberInput{
		Name:         req.Name,
		Position:     req.Position,
		Email:        req.Email,
		Phone:        req.Phone,
		HireDate:     req.HireDate,
		IsActive:     req.IsActive,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, member)
}

type updateStaffMemberRequest struct {
	Name         *string    `json:"name"`
	Position     *string    `json:"position"`
	Email        *string    `json:"email"`
	Phone        *string    `json:"phone"`
	HireDate     *time.Time `json:"hire_date"`
	IsActive     *bool      `json:"is_active"`
	ProfileImage *string    `json:"profile_image"`
}

// Update applies a partial update to a staff member.
func (h *StaffHandler) Update(c *gin.Context) {
	var req updateStaffMemberRequest
	if !bindAndValidate(c, &req) {
		return
	}

	member, err := h.service.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), services.StaffMemberUpdate{
		Name:         req.Name,
		Position:     req.Position,
		Email:        req.Email,
		Phone:        req.Phone,
		HireDate:     req.HireDate,
		IsActive:     req.IsActive,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, member)
}

// Delete removes a staff member.
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
