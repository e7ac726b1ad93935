package upstream

import (
	"context"
	"fmt"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/notification"
)

// NotificationClient talks to the notifications feature area. The
// server owns the records; this client only reads, marks read, and
// deletes.
type NotificationClient struct {
	*Client
}

func NewNotificationClient(base *Client) *NotificationClient {
	return &NotificationClient{Client: base}
}

func (c *NotificationClient) ListForUser(ctx context.Context) ([]notification.Notification, error) {
	var result []notification.Notification
	if err := c.get(ctx, "/notifications/user", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *NotificationClient) ListUnread(ctx context.Context) ([]notification.Notification, error) {
	var result []notification.Notification
	if err := c.get(ctx, "/notifications/user/unread", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *NotificationClient) UnreadCount(ctx context.Context) (int64, error) {
	var result notification.UnreadCountResponse
	if err := c.get(ctx, "/notifications/user/unread/count", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *NotificationClient) MarkRead(ctx context.Context, notificationID int64) error {
	return c.put(ctx, fmt.Sprintf("/notifications/%d/read", notificationID), nil, nil)
}

func (c *NotificationClient) MarkAllRead(ctx context.Context) error {
	return c.put(ctx, "/notifications/user/read-all", nil, nil)
}

func (c *NotificationClient) Delete(ctx context.Context, notificationID int64) error {
	return c.delete(ctx, fmt.Sprintf("/notifications/%d", notificationID), nil)
}
