package api

import (
	"net/http"

	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type realtimeRoutes struct {
	hub *service.RealtimeHub
}

func NewRealtimeRoutes(handler *gin.RouterGroup, hub *service.RealtimeHub, a *auth.DeviceAuth) {
	r := &realtimeRoutes{hub: hub}
	h := handler.Group("/ws")
	h.Use(a.DeviceAuthMiddleware())
	{
		h.GET("", r.Connect)
	}
}

func (r *realtimeRoutes) Connect(c *gin.Context) {
	log := logger.Logger()

	deviceID, ok := auth.DeviceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	r.hub.Register(deviceID, conn)
	defer r.hub.Unregister(deviceID, conn)

	// the client never sends application messages; the read loop exists
	// to notice disconnects and pings
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
