package ws

import (
	"encoding/json"

	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/internal/services/dto"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// IncomingMessage is the envelope for client-to-server frames.
type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan any

	manager     *Manager
	chatService *services.ChatService
	db          *gorm.DB
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Debug("ws: unparseable frame", "user_id", c.UserID, "error", err.Error())
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			break
		}
	}
	c.Conn.Close()
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {
	case "send_message":
		var req dto.SendMessageRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			logger.Debug("ws: invalid send_message payload", "user_id", c.UserID, "error", err.Error())
			return
		}
		created, err := c.chatService.SendMessage(c.db, c.UserID, &req)
		if err != nil {
			c.Send <- map[string]interface{}{"event": "error", "error": err.Error()}
			return
		}
		c.Send <- map[string]interface{}{"event": "message_sent", "message": created}

	case "mark_room_read":
		// Sent when a room regains focus in the client.
		var payload struct {
			RoomID string `json:"room_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		if err := c.chatService.MarkRoomRead(c.db, payload.RoomID, c.UserID); err != nil {
			logger.Debug("ws: mark_room_read failed", "user_id", c.UserID, "room_id", payload.RoomID, "error", err.Error())
		}

	default:
		logger.Debug("ws: unhandled action", "user_id", c.UserID, "action", msg.Action)
	}
}
