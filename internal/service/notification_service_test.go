package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"ridenbite/internal/errors"
	"ridenbite/internal/model"
)

// The nil cache client is fail-safe, so tests run without redis.
func newTestNotificationService(repo *MockNotificationRepository) NotificationService {
	return NewNotificationService(repo, nil, nil, nil)
}

func TestNotificationService_List(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("ListRecent", mock.Anything, notificationPageSize).Return([]model.AdminNotification{
		{ID: 3, Type: model.NotificationNewRestaurant, Read: false},
		{ID: 2, Type: model.NotificationOrderCancelled, Read: true},
	}, nil)
	repo.On("CountUnread", mock.Anything).Return(int64(7), nil)

	service := newTestNotificationService(repo)
	list, err := service.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	// the unread count is global, not derived from the listed page
	assert.Equal(t, int64(7), list.UnreadCount)
	repo.AssertExpectations(t)
}

func TestNotificationService_Notify_SwallowsPersistenceFailure(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.AdminNotification")).Return(assert.AnError)

	service := newTestNotificationService(repo)
	// must not panic or propagate
	service.Notify(context.Background(), &model.AdminNotification{Type: model.NotificationNewRestaurant})
	repo.AssertExpectations(t)
}

func TestNotificationService_MarkRead(t *testing.T) {
	t.Run("marks an existing notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		repo.On("MarkRead", mock.Anything, uint(3)).Return(nil)

		service := newTestNotificationService(repo)
		assert.NoError(t, service.MarkRead(context.Background(), 3))
	})

	t.Run("missing notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		repo.On("MarkRead", mock.Anything, uint(3)).Return(gorm.ErrRecordNotFound)

		service := newTestNotificationService(repo)
		assert.Equal(t, errors.ErrNotificationNotFound, service.MarkRead(context.Background(), 3))
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("MarkAllRead", mock.Anything).Return(nil)

	service := newTestNotificationService(repo)
	assert.NoError(t, service.MarkAllRead(context.Background()))

	repo.On("CountUnread", mock.Anything).Return(int64(0), nil)
	repo.On("ListRecent", mock.Anything, notificationPageSize).Return([]model.AdminNotification{}, nil)
	list, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), list.UnreadCount)
}
