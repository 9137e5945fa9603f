package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/services"
)

// WebSocketHandler attaches an authenticated session to the shipment hub
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("role")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, role)
	}
}
