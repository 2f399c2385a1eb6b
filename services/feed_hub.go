package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// FeedHub pushes ledger events to connected dashboard clients so open
// pages refresh without polling. Single-cat app: one broadcast set.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*websocket.Conn]struct{})}
}

var feedHub = NewFeedHub()

// Feed returns the process-wide hub.
func Feed() *FeedHub { return feedHub }

func (h *FeedHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *FeedHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Broadcast sends {"kind": ..., "payload": ...} to every client.
// Write errors are ignored; dead connections drop out of the read loop.
func (h *FeedHub) Broadcast(kind string, payload any) {
	msg, err := json.Marshal(map[string]any{"kind": kind, "payload": payload})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		_ = conn.WriteMessage(websocket.TextMessage, msg)
	}
}
