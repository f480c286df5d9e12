package service

import (
	"sync"

	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// RealtimeEvent is the wire format pushed to a device's open sockets
// whenever its daily log or challenge state changes.
type RealtimeEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// RealtimeHub fans out state updates to every websocket a device has
// open. A device can be connected from several screens at once.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *RealtimeHub) Register(deviceID string, conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[deviceID] == nil {
		h.clients[deviceID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[deviceID][conn] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(deviceID string, conn *websocket.Conn) {
	h.mu.Lock()
	if set := h.clients[deviceID]; set != nil {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.clients, deviceID)
		}
	}
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *RealtimeHub) Broadcast(deviceID, eventType string, payload interface{}) {
	msg, err := json.Marshal(RealtimeEvent{Type: eventType, Data: payload})
	if err != nil {
		logger.Logger().Warn("failed to encode realtime event",
			zap.String("type", eventType), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients[deviceID] {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Logger().Debug("realtime write failed",
				zap.String("device_id", deviceID), zap.Error(err))
		}
	}
}
