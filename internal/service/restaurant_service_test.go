package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"ridenbite/internal/errors"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
)

func TestRestaurantService_List(t *testing.T) {
	repo := new(MockRestaurantRepository)
	repo.On("List", mock.Anything, repository.RestaurantFilter{Page: 2, Limit: 10, Status: "pending"}).
		Return([]model.Restaurant{
			{ID: 1, OwnerID: 4, Name: "A", Owner: model.User{Name: "Owner A", Email: "a@example.com"}},
		}, int64(25), nil)
	repo.On("MenuAndOrderCounts", mock.Anything, uint(1)).Return(int64(12), int64(3), nil)

	service := NewRestaurantService(repo, new(MockUserRepository), &recordingNotifier{}, nil)
	page, err := service.List(context.Background(), repository.RestaurantFilter{Page: 2, Status: "pending"})

	assert.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(3), page.TotalPages) // 25 rows at 10 per page
	if assert.Len(t, page.Data, 1) {
		assert.Equal(t, "Owner A", page.Data[0].OwnerName)
		assert.Equal(t, "a@example.com", page.Data[0].OwnerEmail)
		assert.Equal(t, int64(12), page.Data[0].MenuItemsCount)
		assert.Equal(t, int64(3), page.Data[0].OrdersCount)
	}
}

func TestRestaurantService_List_ClampsPaging(t *testing.T) {
	repo := new(MockRestaurantRepository)
	repo.On("List", mock.Anything, repository.RestaurantFilter{Page: 1, Limit: 100}).
		Return([]model.Restaurant{}, int64(0), nil)

	service := NewRestaurantService(repo, new(MockUserRepository), &recordingNotifier{}, nil)
	page, err := service.List(context.Background(), repository.RestaurantFilter{Page: -3, Limit: 5000})

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.Limit)
	repo.AssertExpectations(t)
}

func TestRestaurantService_Approve(t *testing.T) {
	t.Run("approval converges regardless of prior state", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		repo.On("SetApproved", mock.Anything, uint(7), true).
			Return(&model.Restaurant{ID: 7, Name: "Pasta Place", Approved: true}, nil).Twice()

		service := NewRestaurantService(repo, new(MockUserRepository), &recordingNotifier{}, nil)

		// second call simulates a duplicated approve request
		for i := 0; i < 2; i++ {
			restaurant, err := service.Approve(context.Background(), 7, true, "")
			assert.NoError(t, err)
			assert.True(t, restaurant.Approved)
		}
		repo.AssertExpectations(t)
	})

	t.Run("rejection keeps the pending flag and records the notes", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		repo.On("SetApproved", mock.Anything, uint(7), false).
			Return(&model.Restaurant{ID: 7, Name: "Pasta Place", Approved: false}, nil)

		notifier := &recordingNotifier{}
		service := NewRestaurantService(repo, new(MockUserRepository), notifier, nil)
		restaurant, err := service.Approve(context.Background(), 7, false, "missing health certificate")

		assert.NoError(t, err)
		assert.False(t, restaurant.Approved)
		if assert.Len(t, notifier.notified, 1) {
			assert.Contains(t, notifier.notified[0].Metadata, "missing health certificate")
		}
	})

	t.Run("missing restaurant", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		repo.On("SetApproved", mock.Anything, uint(7), true).Return(nil, gorm.ErrRecordNotFound)

		service := NewRestaurantService(repo, new(MockUserRepository), &recordingNotifier{}, nil)
		_, err := service.Approve(context.Background(), 7, true, "")

		assert.Equal(t, errors.ErrRestaurantNotFound, err)
	})
}

func TestRestaurantService_Suspend(t *testing.T) {
	repo := new(MockRestaurantRepository)
	repo.On("SetSuspended", mock.Anything, uint(7), true).
		Return(&model.Restaurant{ID: 7, Suspended: true}, nil)

	service := NewRestaurantService(repo, new(MockUserRepository), &recordingNotifier{}, nil)
	restaurant, err := service.Suspend(context.Background(), 7, true)

	assert.NoError(t, err)
	assert.True(t, restaurant.Suspended)
}

func TestRestaurantService_SuspendUser(t *testing.T) {
	t.Run("suspends an existing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("SetSuspended", mock.Anything, uint(3), true).Return(nil)

		service := NewRestaurantService(new(MockRestaurantRepository), userRepo, &recordingNotifier{}, nil)
		assert.NoError(t, service.SuspendUser(context.Background(), 3, true))
	})

	t.Run("missing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("SetSuspended", mock.Anything, uint(3), true).Return(gorm.ErrRecordNotFound)

		service := NewRestaurantService(new(MockRestaurantRepository), userRepo, &recordingNotifier{}, nil)
		assert.Equal(t, errors.ErrUserNotFound, service.SuspendUser(context.Background(), 3, true))
	})
}

func TestRestaurantService_ListPublic_WithoutCache(t *testing.T) {
	// Without Redis the public list degrades to a plain repository read: every
	// call hits the database and nothing errors.
	repo := new(MockRestaurantRepository)
	repo.On("ListApproved", mock.Anything).
		Return([]model.Restaurant{{ID: 1, Name: "A", Approved: true}}, nil).Twice()

	service := NewRestaurantService(repo, new(MockUserRepository), &recordingNotifier{}, nil)

	for i := 0; i < 2; i++ {
		restaurants, err := service.ListPublic(context.Background())
		assert.NoError(t, err)
		assert.Len(t, restaurants, 1)
	}
	repo.AssertExpectations(t)
}
