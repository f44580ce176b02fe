package services

import (
	"errors"

	chatmodels "github.com/VendleServices/vendle-backend/internal/models/chat"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ChatService struct {
	chatRepo      *repositories.ChatRepository
	userRepo      *repositories.UserRepository
	notifications *NotificationService
	publisher     Publisher
}

func NewChatService(
	chatRepo *repositories.ChatRepository,
	userRepo *repositories.UserRepository,
	notifications *NotificationService,
	publisher Publisher,
) *ChatService {
	return &ChatService{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		notifications: notifications,
		publisher:     publisher,
	}
}

// SendMessage delivers a message, creating the room lazily on the first
// exchange between the pair. The recipient's unread counter is bumped in the
// same transaction as the message insert.
func (s *ChatService) SendMessage(db *gorm.DB, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.RecipientID == senderID {
		return nil, apperrors.NewBadRequestError("Cannot message yourself")
	}
	if _, err := s.userRepo.FindByID(db, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Room lookup, creation, message insert and the unread bump all commit
	// together: a failed insert cannot leave an empty room behind.
	var room *chatmodels.Room
	msg := &chatmodels.Message{
		SenderID: senderID,
		Type:     "text",
		Content:  req.Content,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.chatRepo.GetOrCreateRoom(tx, senderID, req.RecipientID, req.ClaimID)
		if err != nil {
			return err
		}
		msg.RoomID = room.ID
		if err := s.chatRepo.CreateMessage(tx, msg); err != nil {
			return err
		}
		return s.chatRepo.IncrementUnread(tx, room.ID, senderID)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toMessageResponse(msg)

	if s.publisher != nil {
		s.publisher.PublishToUser(req.RecipientID, map[string]interface{}{
			"event":   "chat_message",
			"message": resp,
		})
	}
	s.notifications.NotifyNewMessage(db, req.RecipientID, room.ID)

	return &resp, nil
}

// ListRooms returns the user's conversations with unread counters.
func (s *ChatService) ListRooms(db *gorm.DB, userID string) (*dto.RoomListResponse, error) {
	rooms, err := s.chatRepo.ListRoomsByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.RoomListResponse{}
	for i := range rooms {
		room := &rooms[i]
		r := dto.RoomResponse{
			ID:        room.ID,
			ClaimID:   room.ClaimID,
			UpdatedAt: room.UpdatedAt,
		}
		for _, p := range room.Participants {
			if p.UserID == userID {
				r.UnreadCount = p.UnreadCount
			} else {
				r.PartnerID = p.UserID
			}
		}
		if room.LastMessage != nil {
			m := toMessageResponse(room.LastMessage)
			r.LastMessage = &m
		}
		resp.TotalUnread += r.UnreadCount
		resp.Rooms = append(resp.Rooms, r)
	}
	return resp, nil
}

// OpenRoom returns the room's messages and resets the caller's unread
// counter, which is what "opening" a conversation means.
func (s *ChatService) OpenRoom(db *gorm.DB, roomID, userID string, limit int) (*dto.MessageListResponse, error) {
	ok, err := s.chatRepo.IsParticipant(db, roomID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrInsufficientPermissions
	}

	messages, err := s.chatRepo.ListMessages(db, roomID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.chatRepo.ResetUnread(db, roomID, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.MessageListResponse{RoomID: roomID}
	for i := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(&messages[i]))
	}
	return resp, nil
}

// MarkRoomRead resets the unread counter without fetching messages, used when
// the client already has the messages and the room regains focus.
func (s *ChatService) MarkRoomRead(db *gorm.DB, roomID, userID string) error {
	ok, err := s.chatRepo.IsParticipant(db, roomID, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.chatRepo.ResetUnread(db, roomID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toMessageResponse(m *chatmodels.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Type:      m.Type,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
