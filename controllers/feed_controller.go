package controllers

import (
	"net/http"
	"time"

	"github.com/naoki6532b/cat-health-log/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // single-user app behind the PIN gate
}

// FeedWS subscribes a dashboard client to ledger events.
func FeedWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	hub := services.Feed()
	hub.Register(conn)

	// ping keeps the connection alive through proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				hub.Unregister(conn)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(conn)
			return
		}
	}
}
