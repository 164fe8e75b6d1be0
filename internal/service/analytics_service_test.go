package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ridenbite/internal/model"
	"ridenbite/internal/repository"
)

func TestAnalyticsService_DashboardStats(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	restaurantRepo := new(MockRestaurantRepository)

	orderRepo.On("CountByStatus", mock.Anything).Return([]repository.StatusCount{
		{Status: model.StatusPending, Count: 4},
		{Status: model.StatusDelivered, Count: 11},
	}, nil)
	orderRepo.On("SumTotalByStatus", mock.Anything, model.StatusDelivered).Return(int64(123450), nil)
	userRepo.On("CountByRole", mock.Anything, model.RoleCustomer).Return(int64(200), nil)
	userRepo.On("CountByRole", mock.Anything, model.RoleRider).Return(int64(15), nil)
	restaurantRepo.On("Count", mock.Anything).Return(int64(40), nil)
	restaurantRepo.On("CountPending", mock.Anything).Return(int64(6), nil)

	service := NewAnalyticsService(orderRepo, userRepo, restaurantRepo)
	stats, err := service.DashboardStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.OrdersByStatus[model.StatusPending])
	assert.Equal(t, int64(11), stats.OrdersByStatus[model.StatusDelivered])
	assert.Equal(t, "1234.50", stats.DeliveredRevenue)
	assert.Equal(t, "USD", stats.Currency)
	assert.Equal(t, int64(200), stats.TotalCustomers)
	assert.Equal(t, int64(15), stats.TotalRiders)
	assert.Equal(t, int64(40), stats.TotalRestaurants)
	assert.Equal(t, int64(6), stats.PendingRestaurants)
}

func TestAnalyticsService_OwnerEarnings(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)

	restaurantRepo.On("FindByOwnerID", mock.Anything, uint(2)).Return(&model.Restaurant{ID: 5, OwnerID: 2}, nil)
	orderRepo.On("SumTotalByRestaurant", mock.Anything, uint(5), model.StatusDelivered).Return(int64(2597), int64(3), nil)

	service := NewAnalyticsService(orderRepo, new(MockUserRepository), restaurantRepo)
	summary, err := service.OwnerEarnings(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), summary.DeliveredOrders)
	assert.Equal(t, "25.97", summary.GrossEarnings)
	assert.Equal(t, "USD", summary.Currency)
}

func TestAnalyticsService_OwnerEarnings_NoDeliveredOrders(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)

	restaurantRepo.On("FindByOwnerID", mock.Anything, uint(2)).Return(&model.Restaurant{ID: 5, OwnerID: 2}, nil)
	orderRepo.On("SumTotalByRestaurant", mock.Anything, uint(5), model.StatusDelivered).Return(int64(0), int64(0), nil)

	service := NewAnalyticsService(orderRepo, new(MockUserRepository), restaurantRepo)
	summary, err := service.OwnerEarnings(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.DeliveredOrders)
	assert.Equal(t, "0.00", summary.GrossEarnings)
}
