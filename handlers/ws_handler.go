package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/drinkph/portal-go/logger"
	"github.com/drinkph/portal-go/notify"
	"github.com/drinkph/portal-go/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler streams notification events to connected portal clients.
type WSHandler struct {
	auth *services.AuthService
	hub  *notify.Hub
}

func NewWSHandler(auth *services.AuthService, hub *notify.Hub) *WSHandler {
	return &WSHandler{auth: auth, hub: hub}
}

// Events upgrades the connection after validating the token query
// parameter, then holds it open until the peer goes away.
func (h *WSHandler) Events(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}
	if _, err := h.auth.Authenticate(tokenStr); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Add(ws)
	defer func() {
		h.hub.Remove(ws)
		ws.Close()
	}()

	// Drain control frames; the hub does all the writing.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}
