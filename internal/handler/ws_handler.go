package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"trolli/internal/auth"
	"trolli/internal/ws"
)

// WSHandler upgrades view-sync connections. The token travels as a query
// parameter because browsers cannot set headers on websocket dials.
type WSHandler struct {
	hub    *ws.Hub
	tokens *auth.Manager
	up     websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub, tokens *auth.Manager) *WSHandler {
	return &WSHandler{
		hub:    hub,
		tokens: tokens,
		up: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Serve(c *gin.Context) {
	username, err := h.tokens.ParseToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := h.up.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, username)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
