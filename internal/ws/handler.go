package ws

import (
	"net/http"

	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the deployed web client's origin.
		return true
	},
}

// Handler upgrades authenticated requests to websocket connections.
type Handler struct {
	manager     *Manager
	chatService *services.ChatService
	db          *gorm.DB
}

func NewHandler(manager *Manager, chatService *services.ChatService, db *gorm.DB) *Handler {
	return &Handler{
		manager:     manager,
		chatService: chatService,
		db:          db,
	}
}

// ServeWS runs behind AuthMiddleware; the user ID comes from the validated
// token, never from the request.
func (h *Handler) ServeWS(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "user_id", userID, "error", err.Error())
		return
	}

	client := &Client{
		UserID:      userID,
		Conn:        conn,
		Send:        make(chan any, 256),
		manager:     h.manager,
		chatService: h.chatService,
		db:          h.db,
	}

	h.manager.register <- client

	go client.readPump()
	go client.writePump()
}
