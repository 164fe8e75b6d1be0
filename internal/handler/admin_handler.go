package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ridenbite/internal/errors"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
	"ridenbite/internal/service"
)

// AdminHandler handles the admin dashboard endpoints: restaurant approval,
// user suspension, order oversight, notifications and stats.
type AdminHandler struct {
	restaurantService   service.RestaurantService
	orderService        service.OrderService
	notificationService service.NotificationService
	analyticsService    service.AnalyticsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	restaurantService service.RestaurantService,
	orderService service.OrderService,
	notificationService service.NotificationService,
	analyticsService service.AnalyticsService,
) *AdminHandler {
	return &AdminHandler{
		restaurantService:   restaurantService,
		orderService:        orderService,
		notificationService: notificationService,
		analyticsService:    analyticsService,
	}
}

// ApproveRequest toggles the approved flag on a restaurant.
type ApproveRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

// SuspendRequest toggles a suspended flag.
type SuspendRequest struct {
	Suspended bool `json:"suspended"`
}

// SetStatusRequest forces an order to a specific canonical status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReassignRequest swaps the rider on an order.
type ReassignRequest struct {
	RiderID uint `json:"riderId" validate:"required"`
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ListRestaurants godoc
// @Summary List restaurants with pagination and filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param status query string false "pending or active"
// @Param search query string false "Name or owner email"
// @Success 200 {object} service.RestaurantPage
// @Router /admin/restaurants [get]
func (h *AdminHandler) ListRestaurants(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.restaurantService.List(c.Request().Context(), repository.RestaurantFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// GetRestaurant godoc
// @Summary Get a single restaurant
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Success 200 {object} service.RestaurantSummary
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/restaurants/{id} [get]
func (h *AdminHandler) GetRestaurant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	summary, err := h.restaurantService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}

// ApproveRestaurant godoc
// @Summary Approve or reject a restaurant
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param request body ApproveRequest true "Approval decision"
// @Success 200 {object} model.Restaurant
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/restaurants/{id}/approve [patch]
func (h *AdminHandler) ApproveRestaurant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ApproveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	restaurant, err := h.restaurantService.Approve(c.Request().Context(), id, req.Approved, req.Notes)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, restaurant)
}

// SuspendRestaurant godoc
// @Summary Suspend or reactivate a restaurant
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param request body SuspendRequest true "Suspension decision"
// @Success 200 {object} model.Restaurant
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/restaurants/{id}/suspend [patch]
func (h *AdminHandler) SuspendRestaurant(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req SuspendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	restaurant, err := h.restaurantService.Suspend(c.Request().Context(), id, req.Suspended)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, restaurant)
}

// SuspendUser godoc
// @Summary Suspend or activate a user account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body SuspendRequest true "Suspension decision"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/suspend [patch]
func (h *AdminHandler) SuspendUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req SuspendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.restaurantService.SuspendUser(c.Request().Context(), id, req.Suspended); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user updated"})
}

// ListOrders godoc
// @Summary List orders with filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Canonical status"
// @Param customer_id query int false "Customer ID"
// @Param restaurant_id query int false "Restaurant ID"
// @Success 200 {array} model.Order
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c echo.Context) error {
	customerID, _ := strconv.ParseUint(c.QueryParam("customer_id"), 10, 32)
	restaurantID, _ := strconv.ParseUint(c.QueryParam("restaurant_id"), 10, 32)

	orders, err := h.orderService.List(c.Request().Context(), repository.OrderFilter{
		Status:       model.OrderStatus(c.QueryParam("status")),
		CustomerID:   uint(customerID),
		RestaurantID: uint(restaurantID),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, orders)
}

// SetOrderStatus godoc
// @Summary Force an order to a specific status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body SetStatusRequest true "New status"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (h *AdminHandler) SetOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !model.ValidStatus(model.OrderStatus(req.Status)) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	order, err := h.orderService.SetStatus(c.Request().Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// CancelOrder godoc
// @Summary Cancel an order
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/cancel [post]
func (h *AdminHandler) CancelOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.orderService.Cancel(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// ReassignOrder godoc
// @Summary Reassign an order to a different rider
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body ReassignRequest true "New rider"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/reassign [post]
func (h *AdminHandler) ReassignOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ReassignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.Reassign(c.Request().Context(), id, req.RiderID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// RefundOrder godoc
// @Summary Request a refund for an order
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 202 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/refund [post]
func (h *AdminHandler) RefundOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.orderService.Refund(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusAccepted, order)
}

// Stats godoc
// @Summary Admin dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.analyticsService.DashboardStats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// ListNotifications godoc
// @Summary List admin notifications
// @Description Returns the 25 newest notifications plus the count of all unread rows.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.NotificationList
// @Router /admin/notifications [get]
func (h *AdminHandler) ListNotifications(c echo.Context) error {
	list, err := h.notificationService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, list)
}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/notifications/{id}/read [patch]
func (h *AdminHandler) MarkNotificationRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.notificationService.MarkRead(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "notification marked as read"})
}

// MarkAllNotificationsRead godoc
// @Summary Mark all notifications as read
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /admin/notifications/read-all [patch]
func (h *AdminHandler) MarkAllNotificationsRead(c echo.Context) error {
	if err := h.notificationService.MarkAllRead(c.Request().Context()); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "all notifications marked as read"})
}
