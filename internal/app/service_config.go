package app

import (
	"github.com/gastropro/gastropro/internal/services"
)

// ServiceConfig converts the notification settings into the service layer form.
func (n NotificationConfig) ServiceConfig() services.NotificationConfig {
	return services.NotificationConfig{
		SuppressionWindow:  n.SuppressionWindow,
		DismissedRetention: n.DismissedRetention,
		DefaultListLimit:   n.DefaultListLimit,
		MaxListLimit:       n.MaxListLimit,
	}
}
