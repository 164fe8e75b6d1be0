package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ridenbite/internal/errors"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
)

// minorUnitsPerMajor converts stored integer cents to display currency.
var minorUnitsPerMajor = decimal.NewFromInt(100)

// DashboardStats backs the admin analytics dashboard.
type DashboardStats struct {
	OrdersByStatus     map[model.OrderStatus]int64 `json:"ordersByStatus"`
	DeliveredRevenue   string                      `json:"deliveredRevenue"`
	Currency           string                      `json:"currency"`
	TotalCustomers     int64                       `json:"totalCustomers"`
	TotalRiders        int64                       `json:"totalRiders"`
	TotalRestaurants   int64                       `json:"totalRestaurants"`
	PendingRestaurants int64                       `json:"pendingRestaurants"`
}

// EarningsSummary backs the restaurant owner's earnings page.
type EarningsSummary struct {
	DeliveredOrders int64  `json:"deliveredOrders"`
	GrossEarnings   string `json:"grossEarnings"`
	Currency        string `json:"currency"`
}

// AnalyticsService computes dashboard aggregates.
type AnalyticsService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	OwnerEarnings(ctx context.Context, ownerID uint) (*EarningsSummary, error)
}

type analyticsService struct {
	orderRepo      repository.OrderRepository
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, restaurantRepo repository.RestaurantRepository) AnalyticsService {
	return &analyticsService{
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
	}
}

func (s *analyticsService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[model.OrderStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	revenueMinor, err := s.orderRepo.SumTotalByStatus(ctx, model.StatusDelivered)
	if err != nil {
		return nil, err
	}

	customers, err := s.userRepo.CountByRole(ctx, model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	riders, err := s.userRepo.CountByRole(ctx, model.RoleRider)
	if err != nil {
		return nil, err
	}
	restaurants, err := s.restaurantRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.restaurantRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		OrdersByStatus:     byStatus,
		DeliveredRevenue:   decimal.NewFromInt(revenueMinor).Div(minorUnitsPerMajor).StringFixed(2),
		Currency:           "USD",
		TotalCustomers:     customers,
		TotalRiders:        riders,
		TotalRestaurants:   restaurants,
		PendingRestaurants: pending,
	}, nil
}

func (s *analyticsService) OwnerEarnings(ctx context.Context, ownerID uint) (*EarningsSummary, error) {
	restaurant, err := s.restaurantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}

	sumMinor, count, err := s.orderRepo.SumTotalByRestaurant(ctx, restaurant.ID, model.StatusDelivered)
	if err != nil {
		return nil, err
	}

	return &EarningsSummary{
		DeliveredOrders: count,
		GrossEarnings:   decimal.NewFromInt(sumMinor).Div(minorUnitsPerMajor).StringFixed(2),
		Currency:        "USD",
	}, nil
}
