package handlers

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/platform/events"
	"github.com/21R01A7263/docGPT/services"
)

type WSHandler struct {
	source  events.Subscriber
	session *services.SessionService
}

// NewWSHandler streams events from source: the in-process hub, or the Redis
// channel when several processes share one.
func NewWSHandler(source events.Subscriber, session *services.SessionService) *WSHandler {
	return &WSHandler{source: source, session: session}
}

func (h *WSHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.NewError(fiber.StatusUpgradeRequired, "Not a websocket request")
}

// HandleSessionEvents sends the current snapshot, then one snapshot per transition.
func (h *WSHandler) HandleSessionEvents(c *websocket.Conn) {
	logging.Logger.Info("WebSocket connected", "remote", c.RemoteAddr().String())

	// cancelled when the client goes away or the handler returns
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventChan, err := h.source.SubscribeSessionEvents(ctx)
	if err != nil {
		logging.Logger.Error("fail SubscribeSessionEvents", "error", err)
		_ = c.WriteJSON(fiber.Map{"error": "event stream unavailable"})
		return
	}

	go func() {
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	initial := models.SessionEvent{
		ID:        uuid.New().String(),
		Type:      models.EventSessionSnapshot,
		Snapshot:  h.session.Snapshot(),
		Timestamp: time.Now(),
	}
	if err := c.WriteJSON(NewEventView(initial)); err != nil {
		return
	}

	for {
		select {
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if err := c.WriteJSON(NewEventView(event)); err != nil {
				logging.Logger.Error("Failed to send WebSocket message", "error", err)
				return
			}
		case <-ctx.Done():
			logging.Logger.Info("WebSocket disconnected", "remote", c.RemoteAddr().String())
			return
		}
	}
}
