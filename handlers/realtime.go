// handlers/realtime.go - Websocket change feed
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"wodboard/log"
	"wodboard/metrics"
	"wodboard/realtime"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// RequireUpgrade only lets websocket handshakes through to the feed
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// RealtimeFeed streams broker events to one client as JSON
// {type, timestamp, payload} messages until either side goes away.
// GET /ws
func RealtimeFeed(conn *websocket.Conn) {
	logger := log.WithComponent("realtime")
	if broker == nil {
		conn.Close()
		return
	}

	sub := broker.Subscribe()
	metrics.WebsocketClients.Inc()
	defer func() {
		broker.Unsubscribe(sub)
		metrics.WebsocketClients.Dec()
		conn.Close()
	}()

	// Reader: clients never send data, but reading keeps pongs and close
	// frames flowing
	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug().Err(err).Msg("Websocket closed unexpectedly")
				}
				return
			}
		}
	}()

	hello := realtime.NewEvent("connected")
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(hello); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				logger.Debug().Err(err).Msg("Websocket write failed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
