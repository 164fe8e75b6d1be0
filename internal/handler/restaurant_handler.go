package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ridenbite/internal/errors"
	"ridenbite/internal/model"
	"ridenbite/internal/service"
)

// RestaurantHandler handles the restaurant owner dashboard and the public
// storefront endpoints.
type RestaurantHandler struct {
	restaurantService service.RestaurantService
	orderService      service.OrderService
	menuService       service.MenuService
	analyticsService  service.AnalyticsService
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(
	restaurantService service.RestaurantService,
	orderService service.OrderService,
	menuService service.MenuService,
	analyticsService service.AnalyticsService,
) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		orderService:      orderService,
		menuService:       menuService,
		analyticsService:  analyticsService,
	}
}

// MenuItemRequest carries menu item create/update fields. Price is in minor
// currency units.
type MenuItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"required,min=1"`
	Available   *bool  `json:"available"`
}

// RestaurantOrderView is an order rendered in the restaurant status vocabulary.
type RestaurantOrderView struct {
	ID       uint                        `json:"id"`
	Status   model.RestaurantOrderStatus `json:"status"`
	Total    int64                       `json:"total"`
	Currency string                      `json:"currency"`
	Items    []model.OrderItem           `json:"items,omitempty"`
}

// ListPublic godoc
// @Summary List approved restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {array} model.Restaurant
// @Router /restaurants [get]
func (h *RestaurantHandler) ListPublic(c echo.Context) error {
	restaurants, err := h.restaurantService.ListPublic(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, restaurants)
}

// PublicMenu godoc
// @Summary List a restaurant's available menu items
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {array} model.MenuItem
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id}/menu [get]
func (h *RestaurantHandler) PublicMenu(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	items, err := h.menuService.ListPublic(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// ListOrders godoc
// @Summary List the owner's orders in the restaurant status vocabulary
// @Tags restaurant
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RestaurantOrderView
// @Router /restaurant/orders [get]
func (h *RestaurantHandler) ListOrders(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListForRestaurantOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	views := make([]RestaurantOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, RestaurantOrderView{
			ID:       o.ID,
			Status:   o.Status.RestaurantView(),
			Total:    o.Total,
			Currency: o.Currency,
			Items:    o.Items,
		})
	}
	return c.JSON(http.StatusOK, views)
}

// AdvanceOrder godoc
// @Summary Advance an order one step in the lifecycle
// @Description Advancing a delivered or cancelled order is a no-op.
// @Tags restaurant
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} RestaurantOrderView
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /restaurant/orders/{id}/advance [post]
func (h *RestaurantHandler) AdvanceOrder(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Advance(c.Request().Context(), claims.UserID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, RestaurantOrderView{
		ID:       order.ID,
		Status:   order.Status.RestaurantView(),
		Total:    order.Total,
		Currency: order.Currency,
		Items:    order.Items,
	})
}

// CreateMenuItem godoc
// @Summary Create a menu item
// @Tags restaurant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MenuItemRequest true "Menu item"
// @Success 201 {object} model.MenuItem
// @Router /restaurant/menu [post]
func (h *RestaurantHandler) CreateMenuItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.menuService.Create(c.Request().Context(), claims.UserID, service.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   req.Available,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem godoc
// @Summary Update a menu item
// @Tags restaurant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Param request body MenuItemRequest true "Menu item"
// @Success 200 {object} model.MenuItem
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurant/menu/{id} [put]
func (h *RestaurantHandler) UpdateMenuItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item, err := h.menuService.Update(c.Request().Context(), claims.UserID, id, service.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   req.Available,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Tags restaurant
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurant/menu/{id} [delete]
func (h *RestaurantHandler) DeleteMenuItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.menuService.Delete(c.Request().Context(), claims.UserID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "menu item deleted"})
}

// ListMenu godoc
// @Summary List the owner's menu including unavailable items
// @Tags restaurant
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.MenuItem
// @Router /restaurant/menu [get]
func (h *RestaurantHandler) ListMenu(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	items, err := h.menuService.ListForOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// Earnings godoc
// @Summary Owner earnings summary
// @Tags restaurant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.EarningsSummary
// @Router /restaurant/earnings [get]
func (h *RestaurantHandler) Earnings(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	summary, err := h.analyticsService.OwnerEarnings(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}
