package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"ridenbite/internal/auth"
	"ridenbite/internal/model"
	"ridenbite/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard origin is enforced at the edge; the token check below gates
	// access.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler upgrades admin dashboard connections onto the notification hub.
type StreamHandler struct {
	jwtService *auth.JWTService
	hub        *ws.Hub
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(jwtService *auth.JWTService, hub *ws.Hub) *StreamHandler {
	return &StreamHandler{jwtService: jwtService, hub: hub}
}

// Notifications godoc
// @Summary Stream admin notifications over websocket
// @Description Browsers cannot set headers on websocket upgrades, so the access token is passed as a query parameter.
// @Tags admin
// @Param token query string true "Access token"
// @Success 101
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/notifications/stream [get]
func (h *StreamHandler) Notifications(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, err := h.jwtService.ValidateAccessToken(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if claims.Role != model.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	h.hub.Register(conn)

	// Drain reads so ping/pong and close frames are processed; unregister when
	// the client goes away.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}
