package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/beanvanilla/storefront-backend/pkg/logger"
)

// Client is one websocket connection subscribed to a cart session.
type Client struct {
	Hub  *Hub
	Conn *Conn
	Key  string
	Send chan []byte

	messageCount  int
	lastResetTime time.Time
	rateMu        sync.Mutex
}

// NewClient returns a client with a buffered send queue.
func NewClient(hub *Hub, conn *Conn, key string) *Client {
	return &Client{
		Hub:           hub,
		Conn:          conn,
		Key:           key,
		Send:          make(chan []byte, sendBufferSize),
		lastResetTime: time.Now(),
	}
}

// ClientMessage is what a client may send over the socket.
type ClientMessage struct {
	Type string `json:"type"`
}

type envelope struct {
	key  string
	data []byte
}

// reply is a message for one client, delivered only while it is still registered.
type reply struct {
	client *Client
	data   []byte
}

// Hub fans messages out to every connection of a cart session. A session may
// have several connections (tabs, devices).
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	direct     chan reply

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan envelope, 1024),
		direct:     make(chan reply, 256),
	}
}

// Run dispatches until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Key] = append(h.clients[client.Key], client)
			sessions := len(h.clients[client.Key])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"cart_key":       client.Key,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[msg.key] {
				select {
				case client.Send <- msg.data:
				default:
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"cart_key": msg.key,
					})
				}
			}
			h.mu.RUnlock()

		case msg := <-h.direct:
			h.mu.RLock()
			if h.registered(msg.client) {
				select {
				case msg.client.Send <- msg.data:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}

// registered reports whether client is in the hub. Callers hold mu.
func (h *Hub) registered(client *Client) bool {
	for _, c := range h.clients[client.Key] {
		if c == client {
			return true
		}
	}
	return false
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list, ok := h.clients[client.Key]
	if !ok {
		return
	}
	kept := make([]*Client, 0, len(list))
	found := false
	for _, c := range list {
		if c == client {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return
	}
	if len(kept) == 0 {
		delete(h.clients, client.Key)
	} else {
		h.clients[client.Key] = kept
	}
	close(client.Send)

	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"cart_key":           client.Key,
		"remaining_sessions": len(kept),
	})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, list := range h.clients {
		for _, c := range list {
			close(c.Send)
		}
		delete(h.clients, key)
	}
}

// Publish queues message for every connection of key. It never blocks: when the
// broadcast queue is full the message is dropped.
func (h *Hub) Publish(key string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message", err, map[string]interface{}{
			"cart_key": key,
		})
		return err
	}

	select {
	case h.broadcast <- envelope{key: key, data: data}:
	default:
		logger.Warn("Broadcast channel full, message dropped", map[string]interface{}{
			"cart_key": key,
		})
	}
	return nil
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Sessions is the number of open connections for key.
func (h *Hub) Sessions(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[key])
}

// HandleClientMessage answers pings and ignores everything else. It runs on the
// client's read goroutine, so replies go through Run, the only sender on Send.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	client.rateMu.Lock()
	now := time.Now()
	if now.Sub(client.lastResetTime) >= time.Second {
		client.messageCount = 0
		client.lastResetTime = now
	}
	client.messageCount++
	count := client.messageCount
	client.rateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"cart_key": client.Key,
			"count":    count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"cart_key": client.Key,
			"error":    err.Error(),
		})
		return
	}

	if msg.Type == "ping" {
		data, _ := json.Marshal(map[string]string{"type": "pong"})
		select {
		case h.direct <- reply{client: client, data: data}:
		default:
		}
	}
}
