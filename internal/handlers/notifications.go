package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/gastropro/internal/notifications"
	"github.com/gastropro/gastropro/internal/services"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
	"github.com/gastropro/gastropro/pkg/response"
)

// NotificationHandler exposes HTTP endpoints for the notification feed.
type NotificationHandler struct {
	service      *services.NotificationService
	inventory    services.InventoryLister
	hub          *notifications.Hub
	pollInterval time.Duration
}

// NewNotificationHandler constructs a notification handler. The hub is
// optional; without it the stream endpoint reports service unavailable.
func NewNotificationHandler(service *services.NotificationService, inventory services.InventoryLister, hub *notifications.Hub, pollInterval time.Duration) *NotificationHandler {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &NotificationHandler{
		service:      service,
		inventory:    inventory,
		hub:          hub,
		pollInterval: pollInterval,
	}
}

// List returns the visible notification feed.
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), services.ListNotificationsInput{
		RecipientID: strings.TrimSpace(c.Query("recipient_id")),
		Category:    strings.TrimSpace(c.Query("category")),
		Priority:    strings.TrimSpace(c.Query("priority")),
		UnreadOnly:  parseBoolQuery(c, "unread_only"),
		Limit:       parseIntQuery(c, "limit", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// Stats returns feed counts for badge rendering.
func (h *NotificationHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), strings.TrimSpace(c.Query("recipient_id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// UnreadCount returns the unread badge counter.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), strings.TrimSpace(c.Query("recipient_id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

// Settings returns client polling guidance.
func (h *NotificationHandler) Settings(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"poll_interval_seconds": int(h.pollInterval.Seconds()),
	})
}

type createNotificationRequest struct {
	Category          string         `json:"category" validate:"required"`
	Type              string         `json:"notification_type"`
	Priority          string         `json:"priority"`
	Title             string         `json:"title" validate:"required,max=255"`
	Message           string         `json:"message"`
	ActionURL         string         `json:"action_url"`
	ActionLabel       string         `json:"action_label"`
	RecipientID       *string        `json:"recipient_id"`
	RelatedEntityType *string        `json:"related_entity_type"`
	RelatedEntityID   *string        `json:"related_entity_id"`
	Metadata          map[string]any `json:"metadata"`
	ExpiresAt         *time.Time     `json:"expires_at"`
}

// Create persists a manually authored notification.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req createNotificationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	dto, err := h.service.CreateDirect(c.Request.Context(), services.CreateNotificationInput{
		Category:          req.Category,
		Type:              req.Type,
		Priority:          req.Priority,
		Title:             req.Title,
		Message:           req.Message,
		ActionURL:         req.ActionURL,
		ActionLabel:       req.ActionLabel,
		RecipientID:       req.RecipientID,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
		Metadata:          req.Metadata,
		ExpiresAt:         req.ExpiresAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

type updateNotificationRequest struct {
	IsRead      *bool `json:"is_read"`
	IsDismissed *bool `json:"is_dismissed"`
}

// Update applies the one-way read and dismissed transitions. Reverting either
// flag is rejected.
func (h *NotificationHandler) Update(c *gin.Context) {
	var req updateNotificationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if req.IsRead == nil && req.IsDismissed == nil {
		response.Error(c, apperrors.NewBadRequest("nothing to update: provide is_read or is_dismissed"))
		return
	}
	if (req.IsRead != nil && !*req.IsRead) || (req.IsDismissed != nil && !*req.IsDismissed) {
		response.Error(c, apperrors.NewBadRequest("read and dismissed states cannot be reverted"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	var dto *services.NotificationDTO
	var err error

	if req.IsRead != nil {
		dto, err = h.service.MarkRead(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.IsDismissed != nil {
		dto, err = h.service.MarkDismissed(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Success(c, http.StatusOK, dto)
}

// MarkAllRead marks every unread notification as read, optionally limited to
// one category.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count, err := h.service.MarkAllRead(c.Request.Context(),
		strings.TrimSpace(c.Query("recipient_id")),
		strings.TrimSpace(c.Query("category")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked_read": count})
}

// Delete permanently removes a notification.
func (h *NotificationHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Cleanup removes expired and stale dismissed notifications on demand.
func (h *NotificationHandler) Cleanup(c *gin.Context) {
	removed, err := h.service.CleanupExpired(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}

// CheckInventory runs the inventory alert sweep on demand.
func (h *NotificationHandler) CheckInventory(c *gin.Context) {
	if h.inventory == nil {
		response.Error(c, apperrors.ErrStoreUnavailable)
		return
	}

	created, err := h.service.CheckInventoryAndCreateAlerts(c.Request.Context(), h.inventory)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"alerts_created": created})
}

// Stream upgrades the connection to a WebSocket feed of notification events.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, apperrors.ErrStoreUnavailable)
		return
	}

	h.hub.Serve(strings.TrimSpace(c.Query("recipient_id")), c.Writer, c.Request)
}
