package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sismo/internal/domain"
)

type notificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *string   `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationDTO(n domain.Notification) notificationDTO {
	return notificationDTO{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (a *App) NotificationsList(w http.ResponseWriter, r *http.Request) {
	identity := a.identity(r)
	if identity == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	limit := queryInt(r, "limit", a.NotificationLimit)
	notifications, err := a.Notifications.ListForUser(r.Context(), identity.ID, limit)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	unread := 0
	items := make([]notificationDTO, 0, len(notifications))
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
		items = append(items, toNotificationDTO(n))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "unread": unread})
}

func (a *App) NotificationsMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Notifications.MarkRead(r.Context(), id); err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "is_read": true})
}
