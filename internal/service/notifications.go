package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sismo/internal/domain"
)

// NotificationService manages per-user notifications and the owner fan-out
// triggered by new reports and donations.
type NotificationService struct {
	notifications domain.NotificationRepository
	ownerID       string
	logger        zerolog.Logger
}

// NewNotificationService creates a NotificationService. ownerID is the
// administrative recipient of fan-out notifications.
func NewNotificationService(notifications domain.NotificationRepository, ownerID string, logger zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, ownerID: ownerID, logger: logger}
}

// ListForUser returns the caller's notifications newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, limit)
}

// MarkRead flips a notification to read. Already-read notifications are a
// no-op, not an error.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

// NotifyOwner synthesizes a notification for the owner recipient. It is
// fire-and-forget: failures are logged and never propagate, so the triggering
// write is not rolled back or failed.
func (s *NotificationService) NotifyOwner(ctx context.Context, kind domain.NotificationType, title, message string, relatedID *string) {
	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    s.ownerID,
		Type:      kind,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("type", string(kind)).Msg("owner notification failed")
	}
}
