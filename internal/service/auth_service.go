package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ridenbite/internal/auth"
	"ridenbite/internal/errors"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
	"ridenbite/internal/storage"
)

const bcryptCost = 10

// RegisterInput carries registration fields. Role-specific fields are only
// consulted for the matching role.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     model.Role
	// Restaurant-specific
	BusinessName    string
	Address         string
	StorefrontImage string // base64, optional
	// Rider-specific
	VehicleType model.VehicleType
}

// AuthResult pairs the created/authenticated user with its tokens.
type AuthResult struct {
	User   *model.User     `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// AuthService handles registration, the login approval gate and the refresh
// token lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken, accessToken string) error
}

type authService struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	jwtService     *auth.JWTService
	tokenStore     auth.TokenStoreInterface
	images         storage.ImageStore
	notifications  NotificationService
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	images storage.ImageStore,
	notifications NotificationService,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		jwtService:     jwtService,
		tokenStore:     tokenStore,
		images:         images,
		notifications:  notifications,
	}
}

// Register creates a user plus any role-specific records. Restaurant
// registration is transactional; the optional storefront image is stored
// first and an upload failure aborts the whole registration.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Role == model.RoleAdmin {
		return nil, errors.ErrForbidden
	}
	if in.Role == "" {
		in.Role = model.RoleCustomer
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         in.Role,
	}

	// A concurrent registration can slip past the existence check; the unique
	// index on email then reports it as a duplicated key.
	switch in.Role {
	case model.RoleRestaurant:
		if err := s.registerRestaurant(ctx, user, in); err != nil {
			if err == gorm.ErrDuplicatedKey {
				return nil, errors.ErrUserAlreadyExists
			}
			return nil, err
		}
	case model.RoleRider:
		if err := s.registerRider(ctx, user, in); err != nil {
			if err == gorm.ErrDuplicatedKey {
				return nil, errors.ErrUserAlreadyExists
			}
			return nil, err
		}
	default:
		if err := s.userRepo.Create(ctx, user); err != nil {
			if err == gorm.ErrDuplicatedKey {
				return nil, errors.ErrUserAlreadyExists
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *authService) registerRestaurant(ctx context.Context, user *model.User, in RegisterInput) error {
	var imageURL string
	if in.StorefrontImage != "" {
		url, err := s.images.SaveBase64(in.StorefrontImage, "restaurants")
		if err != nil {
			// fail fast, no partial state
			return fmt.Errorf("store storefront image: %w", err)
		}
		imageURL = url
	}

	restaurant := &model.Restaurant{
		Name:    in.BusinessName,
		Address: in.Address,
	}
	profile := &model.RestaurantProfile{
		Phone:    in.Phone,
		ImageURL: imageURL,
		Status:   model.ProfileStatusActive,
	}
	if err := s.restaurantRepo.CreateWithOwner(ctx, user, restaurant, profile); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return err
		}
		return fmt.Errorf("create restaurant: %w", err)
	}

	restaurantID := restaurant.ID
	s.notifications.Notify(ctx, &model.AdminNotification{
		Type:         model.NotificationNewRestaurant,
		Title:        "New restaurant pending approval",
		Message:      fmt.Sprintf("%s registered and is awaiting review", restaurant.Name),
		RestaurantID: &restaurantID,
	})
	return nil
}

func (s *authService) registerRider(ctx context.Context, user *model.User, in RegisterInput) error {
	vehicle := in.VehicleType
	if vehicle == "" {
		vehicle = model.DefaultVehicleType
	}
	return s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if err := repo.Create(ctx, user); err != nil {
			return err
		}
		return repo.CreateRiderProfile(ctx, &model.RiderProfile{
			UserID:      user.ID,
			VehicleType: vehicle,
			Approved:    true,
		})
	})
}

// Login authenticates a user. Restaurant accounts pass through the approval
// gate: the restaurant lookup happens only after the password verifies, so
// credential guessing cannot probe approval state.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if user.Suspended {
		return nil, errors.ErrAccountSuspended
	}

	if user.Role == model.RoleRestaurant {
		restaurant, err := s.restaurantRepo.FindByOwnerID(ctx, user.ID)
		if err != nil || !restaurant.Approved {
			return nil, errors.ErrPendingApproval
		}
		if restaurant.Suspended {
			return nil, errors.ErrRestaurantSuspended
		}
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*auth.TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Role, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &auth.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh validates a refresh token against Redis and returns a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	storedUserID, storedRole, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return "", errors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(storedUserID, storedRole)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token and blacklists the presented access token for
// its remaining lifetime, so a stolen pair dies immediately rather than at the
// access token's expiry.
func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return errors.ErrInvalidRefreshToken
	}

	if accessToken != "" {
		if ac, err := s.jwtService.ValidateAccessToken(accessToken); err == nil && ac.ID != "" && ac.ExpiresAt != nil {
			if ttl := time.Until(ac.ExpiresAt.Time); ttl > 0 {
				// best-effort: a cache outage must not block logout
				_ = s.tokenStore.BlacklistAccessToken(ctx, ac.ID, ttl)
			}
		}
	}

	return s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
}
