package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/noah-isme/hostel-portal-api/internal/models"
)

type notificationPayload struct {
	ID        flexID     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Category  string     `json:"category"`
	Read      bool       `json:"read"`
	CreatedAt *time.Time `json:"createdAt"`
}

// Notifications lists the caller's notifications.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var payload []notificationPayload
	if err := c.doJSON(ctx, http.MethodGet, "/notifications", nil, nil, &payload); err != nil {
		return nil, err
	}
	items := make([]models.Notification, 0, len(payload))
	for _, item := range payload {
		notification := models.Notification{
			ID:       item.ID.String(),
			Title:    item.Title,
			Message:  item.Message,
			Category: item.Category,
			Read:     item.Read,
		}
		if item.CreatedAt != nil {
			notification.CreatedAt = *item.CreatedAt
		}
		items = append(items, notification)
	}
	return items, nil
}

// MarkNotificationRead flags a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := "/notifications/" + url.PathEscape(id) + "/read"
	return c.doJSON(ctx, http.MethodPatch, path, nil, nil, nil)
}

// MarkAllNotificationsRead flags every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPatch, "/notifications/read-all", nil, nil, nil)
}

// DeleteNotification removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	path := "/notifications/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
