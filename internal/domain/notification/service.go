package notification

import (
	"context"
)

// NotificationService defines the read-side notification operations the
// kiosk offers. All records are server-owned.
type NotificationService interface {
	List(ctx context.Context) ([]Notification, error)
	Unread(ctx context.Context) ([]Notification, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, notificationID int64) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, notificationID int64) error
}
