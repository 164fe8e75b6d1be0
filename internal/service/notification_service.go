package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"ridenbite/internal/cache"
	"ridenbite/internal/errors"
	"ridenbite/internal/events"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
	"ridenbite/internal/ws"
)

const (
	notificationPageSize = 25
	unreadCountCacheKey  = "admin:notifications:unread"
	unreadCountCacheTTL  = 30 * time.Second
)

// NotificationList is the admin inbox payload: the newest page plus the count
// of every unread row, which callers must not assume equals the page's unread
// rows.
type NotificationList struct {
	Notifications []model.AdminNotification `json:"notifications"`
	UnreadCount   int64                     `json:"unreadCount"`
}

// NotificationService owns admin notification fan-out and the inbox queries.
type NotificationService interface {
	Notify(ctx context.Context, n *model.AdminNotification)
	List(ctx context.Context) (*NotificationList, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	cache     *cache.Client
	hub       *ws.Hub
	publisher *events.Publisher
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository, cache *cache.Client, hub *ws.Hub, publisher *events.Publisher) NotificationService {
	return &notificationService{
		repo:      repo,
		cache:     cache,
		hub:       hub,
		publisher: publisher,
	}
}

// Notify persists a notification, invalidates the unread-count cache and
// fans out over the websocket hub and the event bus. Persistence failure is
// logged and swallowed: a lost notification must never fail the triggering
// operation.
func (s *notificationService) Notify(ctx context.Context, n *model.AdminNotification) {
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification: create %s: %v", n.Type, err)
		return
	}
	_ = s.cache.Delete(ctx, unreadCountCacheKey)

	if s.hub != nil {
		s.hub.Broadcast(n)
	}
	if s.publisher != nil {
		var restaurantID uint
		if n.RestaurantID != nil {
			restaurantID = *n.RestaurantID
		}
		s.publisher.Publish(ctx, events.Event{
			Type:       string(n.Type),
			Restaurant: restaurantID,
		})
	}
}

// List returns the newest 25 notifications and the global unread count.
func (s *notificationService) List(ctx context.Context) (*NotificationList, error) {
	notifications, err := s.repo.ListRecent(ctx, notificationPageSize)
	if err != nil {
		return nil, err
	}

	unread, err := s.unreadCount(ctx)
	if err != nil {
		return nil, err
	}

	return &NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *notificationService) unreadCount(ctx context.Context) (int64, error) {
	if data, _ := s.cache.Get(ctx, unreadCountCacheKey); data != nil {
		if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			return n, nil
		}
	}

	count, err := s.repo.CountUnread(ctx)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Set(ctx, unreadCountCacheKey, []byte(strconv.FormatInt(count, 10)), unreadCountCacheTTL)
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotificationNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, unreadCountCacheKey)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	if err := s.repo.MarkAllRead(ctx); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, unreadCountCacheKey)
	return nil
}
