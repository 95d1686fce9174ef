package handlers

import (
	"context"
	"net/http"

	"battery-lab-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveFeed streams events from the Redis events channel to a WebSocket
// client until either side goes away.
func LiveFeed(cache Cache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil || !cache.Available() {
			respondError(c, http.StatusServiceUnavailable, "Live feed unavailable")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()
		liveClients.Inc()
		defer liveClients.Dec()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// The client never sends anything; a read error means it hung up.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		pubsub := cache.Subscribe(ctx, services.EventsChannel)
		if pubsub == nil {
			return
		}
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					log.Debug("live feed write failed", zap.Error(err))
					return
				}
			}
		}
	}
}
