package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/notification"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/querycache"
	"github.com/techstaffhub/attendance-kiosk/internal/upstream"
)

const listTTL = 30 * time.Second

type NotificationServiceImpl struct {
	api   *upstream.NotificationClient
	cache *querycache.Cache
}

func NewNotificationService(api *upstream.NotificationClient, cache *querycache.Cache) notification.NotificationService {
	return &NotificationServiceImpl{
		api:   api,
		cache: cache,
	}
}

// List implements notification.NotificationService.
func (s *NotificationServiceImpl) List(ctx context.Context) ([]notification.Notification, error) {
	key := querycache.Key{Family: querycache.FamilyNotifications}
	value, err := s.cache.Get(ctx, key, listTTL, func(ctx context.Context) (any, error) {
		return s.api.ListForUser(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]notification.Notification), nil
}

// Unread implements notification.NotificationService.
func (s *NotificationServiceImpl) Unread(ctx context.Context) ([]notification.Notification, error) {
	key := querycache.Key{Family: querycache.FamilyNotifications, Params: "unread"}
	value, err := s.cache.Get(ctx, key, listTTL, func(ctx context.Context) (any, error) {
		return s.api.ListUnread(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]notification.Notification), nil
}

// UnreadCount implements notification.NotificationService.
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	key := querycache.Key{Family: querycache.FamilyNotifications, Params: "unread-count"}
	value, err := s.cache.Get(ctx, key, listTTL, func(ctx context.Context) (any, error) {
		return s.api.UnreadCount(ctx)
	})
	if err != nil {
		return 0, err
	}
	return value.(int64), nil
}

// MarkRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, notificationID int64) error {
	if err := s.api.MarkRead(ctx, notificationID); err != nil {
		return err
	}
	s.reconcile(ctx)
	return nil
}

// MarkAllRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context) error {
	if err := s.api.MarkAllRead(ctx); err != nil {
		return err
	}
	s.reconcile(ctx)
	return nil
}

// Delete implements notification.NotificationService.
func (s *NotificationServiceImpl) Delete(ctx context.Context, notificationID int64) error {
	if err := s.api.Delete(ctx, notificationID); err != nil {
		return err
	}
	s.reconcile(ctx)
	return nil
}

func (s *NotificationServiceImpl) reconcile(ctx context.Context) {
	if err := s.cache.Reconcile(ctx, querycache.FamilyNotifications); err != nil {
		slog.Warn("notifications cache refetch failed", "error", err)
	}
}
