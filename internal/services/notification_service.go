package services

import (
	"encoding/json"
	"fmt"

	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Publisher pushes realtime events to connected clients. Implemented by the
// websocket manager; nil-safe for contexts without realtime (tests, workers).
type Publisher interface {
	PublishToUser(userID string, event interface{})
}

const (
	NotificationTypeNewBid        = "new_bid"
	NotificationTypeInvitation    = "invitation"
	NotificationTypeInviteAnswer  = "invitation_answered"
	NotificationTypeAuctionClosed = "auction_closed"
	NotificationTypeNewMessage    = "new_message"
)

type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	publisher        Publisher
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository, publisher Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *NotificationService) List(db *gorm.DB, userID string, limit int) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(db, userID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.NotificationListResponse{UnreadCount: unread}
	for i := range notifications {
		n := &notifications[i]
		resp.Notifications = append(resp.Notifications, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp, nil
}

func (s *NotificationService) MarkRead(db *gorm.DB, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(db, userID, notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) CountUnread(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// --- Factory helpers. Failures are logged, never propagated: a missed
// notification must not fail the triggering operation. ---

func (s *NotificationService) NotifyNewBid(db *gorm.DB, ownerID, claimID, auctionID string, amount float64) {
	s.create(db, ownerID, NotificationTypeNewBid,
		"New bid on your auction",
		fmt.Sprintf("A contractor placed a bid of $%.2f", amount),
		map[string]string{"claim_id": claimID, "auction_id": auctionID})
}

func (s *NotificationService) NotifyInvitation(db *gorm.DB, contractorID, claimID, invitationID string) {
	s.create(db, contractorID, NotificationTypeInvitation,
		"New project invitation",
		"A homeowner invited you to review their claim",
		map[string]string{"claim_id": claimID, "invitation_id": invitationID})
}

func (s *NotificationService) NotifyInvitationAnswered(db *gorm.DB, ownerID, claimID string, accepted bool) {
	title := "Invitation declined"
	message := "A contractor declined your invitation"
	if accepted {
		title = "Invitation accepted"
		message = "A contractor accepted your invitation and joined the project"
	}
	s.create(db, ownerID, NotificationTypeInviteAnswer, title, message,
		map[string]string{"claim_id": claimID})
}

func (s *NotificationService) NotifyAuctionClosed(db *gorm.DB, ownerID, claimID, auctionID string, bidCount int) {
	s.create(db, ownerID, NotificationTypeAuctionClosed,
		"Your auction has closed",
		fmt.Sprintf("The bidding window ended with %d bid(s)", bidCount),
		map[string]string{"claim_id": claimID, "auction_id": auctionID})
}

func (s *NotificationService) NotifyNewMessage(db *gorm.DB, recipientID, roomID string) {
	s.create(db, recipientID, NotificationTypeNewMessage,
		"New message",
		"You have a new message",
		map[string]string{"room_id": roomID})
}

func (s *NotificationService) create(db *gorm.DB, userID, notifType, title, message string, data map[string]string) {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(payload),
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.Warn("failed to create notification", "user_id", userID, "type", notifType, "error", err.Error())
		return
	}

	if s.publisher != nil {
		s.publisher.PublishToUser(userID, map[string]interface{}{
			"event":        "notification",
			"notification": n,
		})
	}
}
