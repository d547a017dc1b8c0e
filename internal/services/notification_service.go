package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/models"
	"github.com/gastropro/gastropro/internal/notifications"
	"github.com/gastropro/gastropro/internal/notify"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
	"github.com/gastropro/gastropro/pkg/logger"
	"github.com/gastropro/gastropro/pkg/metrics"
)

const (
	defaultSuppressionWindow  = 6 * time.Hour
	defaultDismissedRetention = 720 * time.Hour
	defaultListLimit          = 50
	maxListLimit              = 100
)

// NotificationConfig tunes suppression and listing behaviour.
type NotificationConfig struct {
	SuppressionWindow  time.Duration
	DismissedRetention time.Duration
	DefaultListLimit   int
	MaxListLimit       int
}

func (c NotificationConfig) normalised() NotificationConfig {
	if c.SuppressionWindow <= 0 {
		c.SuppressionWindow = defaultSuppressionWindow
	}
	if c.DismissedRetention <= 0 {
		c.DismissedRetention = defaultDismissedRetention
	}
	if c.MaxListLimit <= 0 {
		c.MaxListLimit = maxListLimit
	}
	if c.DefaultListLimit <= 0 || c.DefaultListLimit > c.MaxListLimit {
		c.DefaultListLimit = min(defaultListLimit, c.MaxListLimit)
	}
	return c
}

// NotificationDTO represents the API-friendly notification payload.
type NotificationDTO struct {
	ID                string         `json:"id"`
	Category          string         `json:"category"`
	Type              string         `json:"notification_type"`
	Priority          string         `json:"priority"`
	Title             string         `json:"title"`
	Message           string         `json:"message"`
	ActionURL         string         `json:"action_url,omitempty"`
	ActionLabel       string         `json:"action_label,omitempty"`
	RecipientID       *string        `json:"recipient_id,omitempty"`
	RelatedEntityType *string        `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string        `json:"related_entity_id,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	IsRead            bool           `json:"is_read"`
	ReadAt            *time.Time     `json:"read_at,omitempty"`
	IsDismissed       bool           `json:"is_dismissed"`
	DismissedAt       *time.Time     `json:"dismissed_at,omitempty"`
	ExpiresAt         *time.Time     `json:"expires_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// CreateNotificationInput defines attributes for a manually created notification.
// It bypasses event classification; enum fields are validated against the
// closed sets.
type CreateNotificationInput struct {
	Category          string
	Type              string
	Priority          string
	Title             string
	Message           string
	ActionURL         string
	ActionLabel       string
	RecipientID       *string
	RelatedEntityType *string
	RelatedEntityID   *string
	Metadata          map[string]any
	ExpiresAt         *time.Time
}

// ListNotificationsInput defines filters for querying the notification feed.
type ListNotificationsInput struct {
	// RecipientID scopes the feed: broadcasts plus rows targeted at this
	// recipient. Empty returns the unscoped feed.
	RecipientID string
	Category    string
	Priority    string
	UnreadOnly  bool
	Limit       int
}

// NotificationStats summarises the visible feed for badge rendering.
type NotificationStats struct {
	Total             int64            `json:"total"`
	Unread            int64            `json:"unread"`
	HighPriorityCount int64            `json:"high_priority_count"`
	ByCategory        map[string]int64 `json:"by_category"`
}

// InventoryLister supplies the inventory snapshot for the alert sweep.
type InventoryLister interface {
	ListAll(ctx context.Context) ([]models.InventoryItem, error)
}

// NotificationService manages the in-app notification feed: event driven
// creation with duplicate suppression, listing, read/dismiss state and cleanup.
type NotificationService struct {
	db  *gorm.DB
	hub *notifications.Hub
	cfg NotificationConfig
}

// NewNotificationService constructs a NotificationService. The hub is optional.
func NewNotificationService(db *gorm.DB, hub *notifications.Hub, cfg NotificationConfig) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	return &NotificationService{db: db, hub: hub, cfg: cfg.normalised()}, nil
}

// Create classifies the event and persists the resulting notification unless a
// recent duplicate suppresses it. A suppressed event returns (nil, nil).
func (s *NotificationService) Create(ctx context.Context, event notify.Event) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	draft, err := notify.Classify(event)
	if err != nil {
		return nil, err
	}

	allowed, err := s.shouldCreate(ctx, draft)
	if err != nil {
		return nil, err
	}
	if !allowed {
		metrics.NotificationsSuppressed.WithLabelValues(string(draft.Category)).Inc()
		logger.Debug("notification suppressed as duplicate",
			zap.String("kind", string(event.Kind)),
			zap.String("entity_type", draft.RelatedEntityType),
			zap.String("entity_id", draft.RelatedEntityID))
		return nil, nil
	}

	return s.persistDraft(ctx, draft)
}

// CreateDirect persists a notification from explicit fields, validating the
// enum values. Duplicate suppression does not apply to direct creation.
func (s *NotificationService) CreateDirect(ctx context.Context, input CreateNotificationInput) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	category := notify.Category(strings.TrimSpace(input.Category))
	if !category.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid notification category %q", input.Category))
	}
	notifType := notify.Type(strings.TrimSpace(input.Type))
	if notifType == "" {
		notifType = notify.TypeInfo
	}
	if !notifType.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid notification type %q", input.Type))
	}
	priority := notify.Priority(strings.TrimSpace(input.Priority))
	if priority == "" {
		priority = notify.PriorityNormal
	}
	if !priority.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid notification priority %q", input.Priority))
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("notification title is required")
	}

	notification := models.Notification{
		Category:          string(category),
		Type:              string(notifType),
		Priority:          string(priority),
		Title:             title,
		Message:           strings.TrimSpace(input.Message),
		ActionURL:         strings.TrimSpace(input.ActionURL),
		ActionLabel:       strings.TrimSpace(input.ActionLabel),
		RecipientID:       input.RecipientID,
		RelatedEntityType: input.RelatedEntityType,
		RelatedEntityID:   input.RelatedEntityID,
		ExpiresAt:         input.ExpiresAt,
	}

	if input.Metadata != nil {
		data, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("notification service: marshal metadata: %w", err)
		}
		notification.Metadata = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, storeError("notification service: create notification", err)
	}

	metrics.NotificationsCreated.WithLabelValues(notification.Category).Inc()
	dto := mapNotification(notification)
	s.announce("notification.created", &dto)
	return &dto, nil
}

// List returns the visible feed newest first: not dismissed, not expired,
// scoped to the recipient when one is supplied.
func (s *NotificationService) List(ctx context.Context, input ListNotificationsInput) ([]NotificationDTO, error) {
	ctx = ensureContext(ctx)

	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultListLimit
	}
	if limit > s.cfg.MaxListLimit {
		limit = s.cfg.MaxListLimit
	}

	query := s.visible(ctx, input.RecipientID)
	if category := strings.TrimSpace(input.Category); category != "" {
		if !notify.Category(category).Valid() {
			return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid notification category %q", category))
		}
		query = query.Where("category = ?", category)
	}
	if priority := strings.TrimSpace(input.Priority); priority != "" {
		if !notify.Priority(priority).Valid() {
			return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid notification priority %q", priority))
		}
		query = query.Where("priority = ?", priority)
	}
	if input.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, storeError("notification service: list notifications", err)
	}

	return mapNotificationRows(rows), nil
}

// Stats summarises the visible feed for the supplied recipient scope.
func (s *NotificationService) Stats(ctx context.Context, recipientID string) (*NotificationStats, error) {
	ctx = ensureContext(ctx)

	stats := &NotificationStats{ByCategory: make(map[string]int64)}

	if err := s.visible(ctx, recipientID).Count(&stats.Total).Error; err != nil {
		return nil, storeError("notification service: count notifications", err)
	}
	if err := s.visible(ctx, recipientID).Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return nil, storeError("notification service: count unread", err)
	}
	if err := s.visible(ctx, recipientID).
		Where("priority IN ?", []string{string(notify.PriorityHigh), string(notify.PriorityUrgent)}).
		Count(&stats.HighPriorityCount).Error; err != nil {
		return nil, storeError("notification service: count high priority", err)
	}

	type categoryCount struct {
		Category string
		Count    int64
	}
	var counts []categoryCount
	if err := s.visible(ctx, recipientID).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&counts).Error; err != nil {
		return nil, storeError("notification service: count by category", err)
	}
	for _, c := range counts {
		stats.ByCategory[c.Category] = c.Count
	}

	return stats, nil
}

// UnreadCount returns the number of unread visible notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	ctx = ensureContext(ctx)

	var count int64
	if err := s.visible(ctx, recipientID).Where("is_read = ?", false).Count(&count).Error; err != nil {
		return 0, storeError("notification service: count unread", err)
	}
	return count, nil
}

// MarkRead flips the read flag. The transition is one-way and idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	notification, err := s.load(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		now := time.Now().UTC()
		if err := s.db.WithContext(ctx).Model(notification).
			Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
			return nil, storeError("notification service: mark read", err)
		}
		notification.IsRead = true
		notification.ReadAt = &now
	}

	dto := mapNotification(*notification)
	s.announce("notification.read", &dto)
	return &dto, nil
}

// MarkDismissed removes the notification from the feed. One-way and idempotent.
func (s *NotificationService) MarkDismissed(ctx context.Context, notificationID string) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	notification, err := s.load(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.IsDismissed {
		now := time.Now().UTC()
		if err := s.db.WithContext(ctx).Model(notification).
			Updates(map[string]any{"is_dismissed": true, "dismissed_at": now}).Error; err != nil {
			return nil, storeError("notification service: dismiss", err)
		}
		notification.IsDismissed = true
		notification.DismissedAt = &now
	}

	dto := mapNotification(*notification)
	s.announce("notification.dismissed", &dto)
	return &dto, nil
}

// MarkAllRead marks every unread visible notification as read, optionally
// limited to one category, and returns the number of rows updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID, category string) (int64, error) {
	ctx = ensureContext(ctx)

	query := s.visible(ctx, recipientID).Where("is_read = ?", false)
	if category = strings.TrimSpace(category); category != "" {
		if !notify.Category(category).Valid() {
			return 0, apperrors.NewBadRequest(fmt.Sprintf("invalid notification category %q", category))
		}
		query = query.Where("category = ?", category)
	}

	now := time.Now().UTC()
	result := query.Updates(map[string]any{"is_read": true, "read_at": now})
	if result.Error != nil {
		return 0, storeError("notification service: mark all read", result.Error)
	}

	if result.RowsAffected > 0 {
		s.announce("notification.read_all", nil)
	}
	return result.RowsAffected, nil
}

// Delete permanently removes a notification.
func (s *NotificationService) Delete(ctx context.Context, notificationID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("id = ?", notificationID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return storeError("notification service: delete notification", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.announce("notification.deleted", &NotificationDTO{ID: notificationID})
	return nil
}

// CleanupExpired removes expired notifications and dismissed notifications
// older than the retention period. It returns the number of rows removed.
func (s *NotificationService) CleanupExpired(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	now := time.Now().UTC()
	cutoff := now.Add(-s.cfg.DismissedRetention)

	result := s.db.WithContext(ctx).
		Where("(expires_at IS NOT NULL AND expires_at <= ?) OR (is_dismissed = ? AND dismissed_at <= ?)",
			now, true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, storeError("notification service: cleanup", result.Error)
	}

	if result.RowsAffected > 0 {
		metrics.NotificationsCleaned.Add(float64(result.RowsAffected))
		logger.Info("notification cleanup removed rows", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// CheckInventoryAndCreateAlerts scans the inventory snapshot and raises out-of
// stock and low-stock events. Suppression applies per item, so repeated sweeps
// inside the window create nothing new. Returns the number of alerts created.
func (s *NotificationService) CheckInventoryAndCreateAlerts(ctx context.Context, inventory InventoryLister) (int, error) {
	ctx = ensureContext(ctx)
	if inventory == nil {
		return 0, errors.New("notification service: inventory lister is required")
	}

	items, err := inventory.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("notification service: list inventory: %w", err)
	}

	created := 0
	for i := range items {
		item := &items[i]

		var kind notify.EventKind
		switch {
		case item.OutOfStock():
			kind = notify.EventInventoryOut
		case item.LowStock():
			kind = notify.EventInventoryLow
		default:
			continue
		}

		dto, err := s.Create(ctx, notify.Event{
			Kind: kind,
			Item: &notify.InventorySubject{
				ID:           item.ID,
				Name:         item.Name,
				CurrentStock: item.CurrentStock,
				MinimumStock: item.MinimumStock,
				Unit:         item.Unit,
				Supplier:     item.Supplier,
			},
		})
		if err != nil {
			return created, err
		}
		if dto != nil {
			created++
		}
	}

	return created, nil
}

// visible returns the base query for the active feed: not dismissed, not
// expired, scoped to broadcasts plus the supplied recipient.
func (s *NotificationService) visible(ctx context.Context, recipientID string) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_dismissed = ?", false).
		Where("expires_at IS NULL OR expires_at > ?", time.Now().UTC())

	if recipientID = strings.TrimSpace(recipientID); recipientID != "" {
		query = query.Where("recipient_id IS NULL OR recipient_id = ?", recipientID)
	}
	return query
}

// shouldCreate applies the duplicate suppression rule. A candidate is withheld
// when a non-dismissed notification for the same subject and category exists
// inside the window with the same type, or with an equal or higher alert
// condition. An out-of-stock escalation therefore bypasses a recent low-stock
// alert, while the reverse is suppressed. Dismissed rows never suppress: a
// user who dismissed an alert may receive a fresh one immediately.
func (s *NotificationService) shouldCreate(ctx context.Context, draft notify.Draft) (bool, error) {
	if draft.RelatedEntityType == "" || draft.RelatedEntityID == "" {
		return true, nil
	}

	since := time.Now().UTC().Add(-s.cfg.SuppressionWindow)

	var existing []models.Notification
	if err := s.db.WithContext(ctx).
		Select("notification_type", "alert_condition").
		Where("related_entity_type = ? AND related_entity_id = ? AND category = ?",
			draft.RelatedEntityType, draft.RelatedEntityID, string(draft.Category)).
		Where("is_dismissed = ?", false).
		Where("created_at >= ?", since).
		Find(&existing).Error; err != nil {
		return false, storeError("notification service: suppression lookup", err)
	}

	candidate := int(draft.Condition)
	for _, row := range existing {
		if row.Type == string(draft.Type) {
			return false, nil
		}
		if candidate > int(notify.AlertNone) && row.AlertCondition >= candidate {
			return false, nil
		}
	}
	return true, nil
}

func (s *NotificationService) persistDraft(ctx context.Context, draft notify.Draft) (*NotificationDTO, error) {
	notification := models.Notification{
		Category:       string(draft.Category),
		Type:           string(draft.Type),
		Priority:       string(draft.Priority),
		AlertCondition: int(draft.Condition),
		Title:          draft.Title,
		Message:        draft.Message,
		ActionURL:      draft.ActionURL,
		ActionLabel:    draft.ActionLabel,
		RecipientID:    draft.RecipientID,
	}

	if draft.RelatedEntityType != "" {
		entityType := draft.RelatedEntityType
		notification.RelatedEntityType = &entityType
	}
	if draft.RelatedEntityID != "" {
		entityID := draft.RelatedEntityID
		notification.RelatedEntityID = &entityID
	}
	if draft.ExpiresIn > 0 {
		expiresAt := time.Now().UTC().Add(draft.ExpiresIn)
		notification.ExpiresAt = &expiresAt
	}
	if draft.Metadata != nil {
		data, err := json.Marshal(draft.Metadata)
		if err != nil {
			return nil, fmt.Errorf("notification service: marshal metadata: %w", err)
		}
		notification.Metadata = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, storeError("notification service: create notification", err)
	}

	metrics.NotificationsCreated.WithLabelValues(notification.Category).Inc()
	dto := mapNotification(notification)
	s.announce("notification.created", &dto)
	return &dto, nil
}

func (s *NotificationService) load(ctx context.Context, notificationID string) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).
		Where("id = ?", notificationID).
		First(&notification).Error; err != nil {
		return nil, storeError("notification service: load notification", err)
	}
	return &notification, nil
}

func (s *NotificationService) announce(event string, dto *NotificationDTO) {
	if s.hub == nil {
		return
	}

	payload := notifications.Event{Event: event}
	if dto != nil {
		payload.Notification = dto
		payload.NotificationID = dto.ID
	}

	if dto != nil && dto.RecipientID != nil && *dto.RecipientID != "" {
		s.hub.BroadcastTo(*dto.RecipientID, payload)
		return
	}
	s.hub.Broadcast(payload)
}

func mapNotification(notification models.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:                notification.ID,
		Category:          notification.Category,
		Type:              notification.Type,
		Priority:          notification.Priority,
		Title:             notification.Title,
		Message:           notification.Message,
		ActionURL:         notification.ActionURL,
		ActionLabel:       notification.ActionLabel,
		RecipientID:       notification.RecipientID,
		RelatedEntityType: notification.RelatedEntityType,
		RelatedEntityID:   notification.RelatedEntityID,
		IsRead:            notification.IsRead,
		ReadAt:            notification.ReadAt,
		IsDismissed:       notification.IsDismissed,
		DismissedAt:       notification.DismissedAt,
		ExpiresAt:         notification.ExpiresAt,
		CreatedAt:         notification.CreatedAt,
		UpdatedAt:         notification.UpdatedAt,
	}

	if len(notification.Metadata) > 0 {
		var metadata map[string]any
		if err := json.Unmarshal(notification.Metadata, &metadata); err == nil {
			dto.Metadata = metadata
		}
	}
	return dto
}

func mapNotificationRows(rows []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapNotification(row))
	}
	return out
}
