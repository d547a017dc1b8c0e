package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification represents one entry of the in-app notification feed.
//
// Rows are immutable after creation apart from the one-way IsRead and
// IsDismissed flips and eventual deletion. The composite suppression index
// backs the duplicate lookup on (related_entity_type, related_entity_id,
// category); the listing index backs the default feed query.
type Notification struct {
	BaseModel

	Category string `gorm:"type:varchar(32);not null;index:idx_notifications_suppression,priority:3;index:idx_notifications_listing,priority:2" json:"category"`
	Type     string `gorm:"column:notification_type;type:varchar(32);not null" json:"notification_type"`
	Priority string `gorm:"type:varchar(32);not null;default:'normal'" json:"priority"`

	// AlertCondition persists the ordered severity of the originating alert
	// condition (notify.AlertCondition; zero for everything that is not a
	// stock alert) so suppression compares escalations directly instead of
	// re-deriving them from display types.
	AlertCondition int `gorm:"not null;default:0" json:"-"`

	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	// RecipientID scopes the notification to one staff member; null broadcasts
	// to all viewers.
	RecipientID *string `gorm:"type:uuid;index:idx_notifications_listing,priority:1" json:"recipient_id"`

	ActionURL   string `gorm:"type:text" json:"action_url,omitempty"`
	ActionLabel string `gorm:"type:varchar(64)" json:"action_label,omitempty"`

	IsRead      bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	IsDismissed bool       `gorm:"default:false;index" json:"is_dismissed"`
	DismissedAt *time.Time `json:"dismissed_at,omitempty"`

	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`

	RelatedEntityType *string `gorm:"type:varchar(64);index:idx_notifications_suppression,priority:1" json:"related_entity_type,omitempty"`
	RelatedEntityID   *string `gorm:"type:varchar(64);index:idx_notifications_suppression,priority:2" json:"related_entity_id,omitempty"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`
}
