package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ridenbite/internal/auth"
	"ridenbite/internal/config"
	"ridenbite/internal/handler"
	"ridenbite/internal/metrics"
	"ridenbite/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	serverMetrics *metrics.ServerMetrics,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	restaurantHandler *handler.RestaurantHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	streamHandler *handler.StreamHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(instrument(serverMetrics))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/restaurants", restaurantHandler.ListPublic)
	api.GET("/restaurants/:id/menu", restaurantHandler.PublicMenu)

	// The websocket upgrade carries its token as a query parameter, so it
	// stays outside the header-based JWT group.
	api.GET("/admin/notifications/stream", streamHandler.Notifications)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTAccessSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), denyRevoked(tokenStore))

	// Customer routes
	secured.POST("/orders", orderHandler.Create)
	secured.GET("/orders/:id", orderHandler.Get)

	// Restaurant owner routes
	restaurant := secured.Group("/restaurant", requireRole(model.RoleRestaurant))
	restaurant.GET("/orders", restaurantHandler.ListOrders)
	restaurant.POST("/orders/:id/advance", restaurantHandler.AdvanceOrder)
	restaurant.GET("/menu", restaurantHandler.ListMenu)
	restaurant.POST("/menu", restaurantHandler.CreateMenuItem)
	restaurant.PUT("/menu/:id", restaurantHandler.UpdateMenuItem)
	restaurant.DELETE("/menu/:id", restaurantHandler.DeleteMenuItem)
	restaurant.GET("/earnings", restaurantHandler.Earnings)

	// Admin routes
	admin := secured.Group("/admin", requireRole(model.RoleAdmin))
	admin.GET("/restaurants", adminHandler.ListRestaurants)
	admin.GET("/restaurants/:id", adminHandler.GetRestaurant)
	admin.PATCH("/restaurants/:id/approve", adminHandler.ApproveRestaurant)
	admin.PATCH("/restaurants/:id/suspend", adminHandler.SuspendRestaurant)
	admin.PATCH("/users/:id/suspend", adminHandler.SuspendUser)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.PATCH("/orders/:id/status", adminHandler.SetOrderStatus)
	admin.POST("/orders/:id/cancel", adminHandler.CancelOrder)
	admin.POST("/orders/:id/reassign", adminHandler.ReassignOrder)
	admin.POST("/orders/:id/refund", adminHandler.RefundOrder)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/notifications", adminHandler.ListNotifications)
	admin.PATCH("/notifications/:id/read", adminHandler.MarkNotificationRead)
	admin.PATCH("/notifications/read-all", adminHandler.MarkAllNotificationsRead)
}

// denyRevoked rejects access tokens that were blacklisted by logout. Runs
// after echo-jwt, so the signature is already verified.
func denyRevoked(store auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if claims.ID != "" {
				revoked, _ := store.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}
			return next(c)
		}
	}
}

// requireRole rejects authenticated requests whose token carries none of the
// allowed roles.
func requireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// instrument records request counts and latency per route.
func instrument(m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			m.Requests.WithLabelValues(path, c.Request().Method, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(path).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
