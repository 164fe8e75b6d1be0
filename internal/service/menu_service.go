package service

import (
	"context"

	"gorm.io/gorm"

	"ridenbite/internal/errors"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
)

// MenuItemInput carries create/update fields for a menu item.
type MenuItemInput struct {
	Name        string
	Description string
	Price       int64
	Available   *bool
}

// MenuService owns owner-scoped menu CRUD and the public menu listing.
type MenuService interface {
	Create(ctx context.Context, ownerID uint, in MenuItemInput) (*model.MenuItem, error)
	Update(ctx context.Context, ownerID, itemID uint, in MenuItemInput) (*model.MenuItem, error)
	Delete(ctx context.Context, ownerID, itemID uint) error
	ListForOwner(ctx context.Context, ownerID uint) ([]model.MenuItem, error)
	ListPublic(ctx context.Context, restaurantID uint) ([]model.MenuItem, error)
}

type menuService struct {
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
}

// NewMenuService creates a new menu service.
func NewMenuService(menuRepo repository.MenuRepository, restaurantRepo repository.RestaurantRepository) MenuService {
	return &menuService{menuRepo: menuRepo, restaurantRepo: restaurantRepo}
}

func (s *menuService) ownedRestaurant(ctx context.Context, ownerID uint) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *menuService) Create(ctx context.Context, ownerID uint, in MenuItemInput) (*model.MenuItem, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	available := true
	if in.Available != nil {
		available = *in.Available
	}
	item := &model.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Available:    available,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) Update(ctx context.Context, ownerID, itemID uint, in MenuItemInput) (*model.MenuItem, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMenuItemNotFound
		}
		return nil, err
	}
	if item.RestaurantID != restaurant.ID {
		return nil, errors.ErrForbidden
	}

	if in.Name != "" {
		item.Name = in.Name
	}
	if in.Description != "" {
		item.Description = in.Description
	}
	if in.Price > 0 {
		item.Price = in.Price
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) Delete(ctx context.Context, ownerID, itemID uint) error {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return err
	}

	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrMenuItemNotFound
		}
		return err
	}
	if item.RestaurantID != restaurant.ID {
		return errors.ErrForbidden
	}
	return s.menuRepo.Delete(ctx, itemID)
}

func (s *menuService) ListForOwner(ctx context.Context, ownerID uint) ([]model.MenuItem, error) {
	restaurant, err := s.ownedRestaurant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.menuRepo.ListByRestaurant(ctx, restaurant.ID, false)
}

// ListPublic exposes only available items of approved, unsuspended restaurants.
func (s *menuService) ListPublic(ctx context.Context, restaurantID uint) ([]model.MenuItem, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}
	if !restaurant.Approved || restaurant.Suspended {
		return nil, errors.ErrRestaurantUnavailable
	}
	return s.menuRepo.ListByRestaurant(ctx, restaurantID, true)
}
