package service

import (
	"context"

	"github.com/noah-isme/hostel-portal-api/internal/models"
)

type notificationClient interface {
	Notifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
}

// NotificationService is a thin passthrough over the upstream notification
// endpoints; the gateway adds no state here.
type NotificationService struct {
	client notificationClient
}

// NewNotificationService constructs the service.
func NewNotificationService(client notificationClient) *NotificationService {
	return &NotificationService{client: client}
}

// List returns the caller's notifications.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	return s.client.Notifications(ctx)
}

// MarkRead flags a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.client.MarkNotificationRead(ctx, id)
}

// MarkAllRead flags every notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.client.MarkAllNotificationsRead(ctx)
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteNotification(ctx, id)
}
