package websocket

import (
	"context"
	"net/http"

	"messagely/internal/services"
	messagely_errors "messagely/pkg/errors"
	"messagely/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated requests and streams the user's events.
type Handler struct {
	hub    *Hub
	logger *logger.Logger
}

func NewHandler(hub *Hub, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Handler{hub: hub, logger: l}
}

// Connect handles GET /ws. It must run after EnsureLoggedIn.
func (h *Handler) Connect(c *gin.Context) {
	username, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		_ = c.Error(messagely_errors.ErrUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).Warnf("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(conn, username)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	h.logger.WithContext(c.Request.Context()).Debugf("websocket connected: %s", client.ID)
	client.ReadLoop()

	h.hub.Unregister(client)
	h.logger.WithContext(c.Request.Context()).Debugf("websocket disconnected: %s", client.ID)
}
