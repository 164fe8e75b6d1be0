package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ridenbite/internal/cache"
	"ridenbite/internal/errors"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	publicListCacheKey = "restaurants:public"
	publicListCacheTTL = time.Minute
)

// RestaurantSummary is the admin listing row: the restaurant plus owner info
// and aggregate counts.
type RestaurantSummary struct {
	ID             uint     `json:"id"`
	OwnerID        uint     `json:"ownerId"`
	OwnerName      string   `json:"ownerName"`
	OwnerEmail     string   `json:"ownerEmail"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	Approved       bool     `json:"approved"`
	Suspended      bool     `json:"suspended"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	MenuItemsCount int64    `json:"menuItemsCount"`
	OrdersCount    int64    `json:"ordersCount"`
}

// RestaurantPage is one page of admin restaurant listings.
type RestaurantPage struct {
	Data       []RestaurantSummary `json:"data"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int64               `json:"totalPages"`
}

// RestaurantService owns the approval workflow and restaurant administration.
type RestaurantService interface {
	List(ctx context.Context, filter repository.RestaurantFilter) (*RestaurantPage, error)
	Get(ctx context.Context, id uint) (*RestaurantSummary, error)
	ListPublic(ctx context.Context) ([]model.Restaurant, error)
	Approve(ctx context.Context, id uint, approved bool, notes string) (*model.Restaurant, error)
	Suspend(ctx context.Context, id uint, suspended bool) (*model.Restaurant, error)
	SuspendUser(ctx context.Context, id uint, suspended bool) error
}

type restaurantService struct {
	repo          repository.RestaurantRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	cache         *cache.Client
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(repo repository.RestaurantRepository, userRepo repository.UserRepository, notifications NotificationService, cache *cache.Client) RestaurantService {
	return &restaurantService{repo: repo, userRepo: userRepo, notifications: notifications, cache: cache}
}

func (s *restaurantService) List(ctx context.Context, filter repository.RestaurantFilter) (*RestaurantPage, error) {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	restaurants, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]RestaurantSummary, 0, len(restaurants))
	for i := range restaurants {
		summaries = append(summaries, s.summarize(ctx, &restaurants[i]))
	}

	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		totalPages++
	}

	return &RestaurantPage{
		Data:       summaries,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *restaurantService) Get(ctx context.Context, id uint) (*RestaurantSummary, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}
	summary := s.summarize(ctx, restaurant)
	return &summary, nil
}

func (s *restaurantService) summarize(ctx context.Context, r *model.Restaurant) RestaurantSummary {
	menuItems, orders, _ := s.repo.MenuAndOrderCounts(ctx, r.ID)
	return RestaurantSummary{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		OwnerName:      r.Owner.Name,
		OwnerEmail:     r.Owner.Email,
		Name:           r.Name,
		Address:        r.Address,
		Lat:            r.Lat,
		Lng:            r.Lng,
		Approved:       r.Approved,
		Suspended:      r.Suspended,
		CreatedAt:      r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		MenuItemsCount: menuItems,
		OrdersCount:    orders,
	}
}

// ListPublic serves the customer-facing restaurant list from a short-lived
// cache; approval and suspension changes invalidate it eagerly.
func (s *restaurantService) ListPublic(ctx context.Context) ([]model.Restaurant, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, publicListCacheKey); data != nil {
		var cached []model.Restaurant
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	restaurants, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(restaurants); err == nil {
		_ = s.cache.Set(ctx, publicListCacheKey, payload, publicListCacheTTL)
	}
	return restaurants, nil
}

// Approve writes the approved flag. approved=false is how rejection is
// stored, indistinguishable from never-reviewed; the notes only travel in the
// notification metadata. The write is idempotent, so concurrent approvals
// converge.
func (s *restaurantService) Approve(ctx context.Context, id uint, approved bool, notes string) (*model.Restaurant, error) {
	restaurant, err := s.repo.SetApproved(ctx, id, approved)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}

	_ = s.cache.Delete(ctx, publicListCacheKey)

	if notes != "" {
		restaurantID := restaurant.ID
		verb := "approved"
		if !approved {
			verb = "rejected"
		}
		s.notifications.Notify(ctx, &model.AdminNotification{
			Type:         model.NotificationNewRestaurant,
			Title:        fmt.Sprintf("Restaurant %s", verb),
			Message:      fmt.Sprintf("%s was %s", restaurant.Name, verb),
			RestaurantID: &restaurantID,
			Metadata:     fmt.Sprintf(`{"notes":%q}`, notes),
		})
	}
	return restaurant, nil
}

func (s *restaurantService) Suspend(ctx context.Context, id uint, suspended bool) (*model.Restaurant, error) {
	restaurant, err := s.repo.SetSuspended(ctx, id, suspended)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}
	_ = s.cache.Delete(ctx, publicListCacheKey)
	return restaurant, nil
}

func (s *restaurantService) SuspendUser(ctx context.Context, id uint, suspended bool) error {
	if err := s.userRepo.SetSuspended(ctx, id, suspended); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}
	return nil
}
