package ws

import (
	"sync"

	"github.com/VendleServices/vendle-backend/internal/logger"
)

// Manager tracks connected clients by user ID and fans events out to them.
// One connection per user; a reconnect replaces the previous one.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister events. Call in a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if prev, ok := m.clients[client.UserID]; ok {
				close(prev.Send)
			}
			m.clients[client.UserID] = client
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.UserID)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID, "total", total)
		}
	}
}

// PublishToUser implements the services.Publisher contract: deliver the event
// to the user's connection if one exists, drop it otherwise. The read lock is
// held across the send so a reconnect cannot close the channel mid-publish.
func (m *Manager) PublishToUser(userID string, event interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- event:
	default:
		// Send buffer full; the client is too slow, drop the connection.
		go func() { m.unregister <- client }()
	}
}
