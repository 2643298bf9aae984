package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	UploadComplete NotificationType = "upload_complete"
	FileDeleted    NotificationType = "file_deleted"
	FolderDeleted  NotificationType = "folder_deleted"
)

// Notification represents a WebSocket notification pushed to the owning
// user's connected clients.
type Notification struct {
	Type     NotificationType `json:"type"`
	FileID   uint             `json:"file_id,omitempty"`
	FolderID uint             `json:"folder_id,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// Client represents a WebSocket client connection
type Client struct {
	UserID string
	Conn   *websocket.Conn
}

// Manager handles WebSocket connections and notifications
type Manager struct {
	clients    map[string][]*Client
	mu         sync.RWMutex
	register   chan *Client
	unregister chan *Client
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager returns the singleton WebSocket manager instance
func GetManager() *Manager {
	once.Do(func() {
		instance = &Manager{
			clients:    make(map[string][]*Client),
			register:   make(chan *Client),
			unregister: make(chan *Client),
		}
		go instance.run()
	})
	return instance
}

// run starts the WebSocket manager
func (m *Manager) run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client.UserID] = append(m.clients[client.UserID], client)
			m.mu.Unlock()
		case client := <-m.unregister:
			m.mu.Lock()
			if clients, ok := m.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						m.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						break
					}
				}
				if len(m.clients[client.UserID]) == 0 {
					delete(m.clients, client.UserID)
				}
			}
			m.mu.Unlock()
		}
	}
}

// RegisterClient registers a new WebSocket client
func (m *Manager) RegisterClient(client *Client) {
	m.register <- client
}

// UnregisterClient unregisters a WebSocket client
func (m *Manager) UnregisterClient(client *Client) {
	m.unregister <- client
}

// NotifyUser sends a notification to every connection of a specific user
func (m *Manager) NotifyUser(userID string, notification Notification) error {
	m.mu.RLock()
	clients, ok := m.clients[userID]
	m.mu.RUnlock()

	if !ok {
		return nil // No clients connected for this user
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	for _, client := range clients {
		if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Handle error but continue sending to other clients
			continue
		}
	}

	return nil
}
