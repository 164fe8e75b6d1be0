package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ridenbite/internal/config"
	"ridenbite/internal/db"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
)

const (
	adminEmail    = "admin@ridenbite.dev"
	adminPassword = "admin123"

	demoOwnerEmail    = "owner@ridenbite.dev"
	demoOwnerPassword = "owner123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RiderProfile{},
		&model.Restaurant{},
		&model.RestaurantProfile{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AdminNotification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	restaurantRepo := repository.NewRestaurantRepository(gormDB)
	menuRepo := repository.NewMenuRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if err := seedDemoRestaurant(ctx, userRepo, restaurantRepo, menuRepo); err != nil {
		log.Fatalf("Failed to seed demo restaurant: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the platform admin account when it does not exist yet.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	if _, err := users.FindByEmail(ctx, adminEmail); err == nil {
		log.Printf("Admin account %s already exists, skipping", adminEmail)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Platform Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin account %s (id=%d)", adminEmail, admin.ID)
	return nil
}

// seedDemoRestaurant creates an already-approved restaurant with a small menu
// so the API is usable right after seeding.
func seedDemoRestaurant(
	ctx context.Context,
	users repository.UserRepository,
	restaurants repository.RestaurantRepository,
	menu repository.MenuRepository,
) error {
	if _, err := users.FindByEmail(ctx, demoOwnerEmail); err == nil {
		log.Printf("Demo restaurant owner %s already exists, skipping", demoOwnerEmail)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoOwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := &model.User{
		Name:         "Demo Owner",
		Email:        demoOwnerEmail,
		PasswordHash: string(hash),
		Phone:        "+15550100",
		Role:         model.RoleRestaurant,
	}
	restaurant := &model.Restaurant{
		Name:     "Demo Diner",
		Address:  "1 Demo Street",
		Approved: true,
	}
	profile := &model.RestaurantProfile{
		Phone:       "+15550100",
		Description: "Seeded demo restaurant",
	}
	if err := restaurants.CreateWithOwner(ctx, owner, restaurant, profile); err != nil {
		return err
	}

	items := []model.MenuItem{
		{RestaurantID: restaurant.ID, Name: "Classic Burger", Description: "Beef patty, cheddar, pickles", Price: 899, Available: true},
		{RestaurantID: restaurant.ID, Name: "Fries", Description: "Sea salt", Price: 349, Available: true},
		{RestaurantID: restaurant.ID, Name: "Milkshake", Description: "Vanilla", Price: 499, Available: true},
	}
	for i := range items {
		if err := menu.Create(ctx, &items[i]); err != nil {
			return err
		}
	}

	log.Printf("Created demo restaurant %q (id=%d) with %d menu items", restaurant.Name, restaurant.ID, len(items))
	return nil
}
