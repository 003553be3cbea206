package controller

import (
	"net/http"

	"github.com/beanvanilla/storefront-backend/internal/middleware"
	ws "github.com/beanvanilla/storefront-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type NotificationController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewNotificationController(hub *ws.Hub, allowedOrigins []string) *NotificationController {
	return &NotificationController{
		hub:      hub,
		upgrader: ws.NewUpgrader(allowedOrigins),
	}
}

// Stream subscribes the connection to its cart session's notifications
// GET /api/notifications/ws
func (ctrl *NotificationController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	key, ok := cartKey(c)
	if !ok {
		return
	}

	// the handshake response only carries headers passed here
	header := http.Header{}
	if session := c.Writer.Header().Get(middleware.CartSessionHeader); session != "" {
		header.Set(middleware.CartSessionHeader, session)
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		log.Warn("Failed to upgrade to WebSocket", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, key)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"cart_key": key,
	})
}
