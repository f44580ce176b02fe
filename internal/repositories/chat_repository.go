package repositories

import (
	"errors"
	"time"

	chatmodels "github.com/VendleServices/vendle-backend/internal/models/chat"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository struct{}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

// RoomPairKey is the canonical identity of a two-party room: both user IDs,
// sorted. It backs the unique index on chat.rooms.
func RoomPairKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

// GetOrCreateRoom returns the room between the two users, creating it with
// both participant rows on the first exchange. The insert goes through
// ON CONFLICT DO NOTHING on the pair key, so a concurrent first message
// cannot produce a second room; the loser re-reads the winner's.
func (r *ChatRepository) GetOrCreateRoom(db *gorm.DB, userA, userB string, claimID *string) (*chatmodels.Room, error) {
	key := RoomPairKey(userA, userB)

	var room chatmodels.Room
	err := db.Preload("Participants").First(&room, "pair_key = ?", key).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := chatmodels.Room{PairKey: key, ClaimID: claimID}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pair_key"}},
		DoNothing: true,
	}).Create(&fresh)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race; the concurrent sender's room wins.
		err := db.Preload("Participants").First(&room, "pair_key = ?", key).Error
		if err != nil {
			return nil, err
		}
		return &room, nil
	}

	now := time.Now()
	participants := []chatmodels.RoomParticipant{
		{RoomID: fresh.ID, UserID: userA, JoinedAt: now},
		{RoomID: fresh.ID, UserID: userB, JoinedAt: now},
	}
	if err := db.Create(&participants).Error; err != nil {
		return nil, err
	}
	fresh.Participants = participants
	return &fresh, nil
}

func (r *ChatRepository) FindRoomByID(db *gorm.DB, roomID string) (*chatmodels.Room, error) {
	var room chatmodels.Room
	err := db.Preload("Participants").Preload("LastMessage").
		First(&room, "id = ?", roomID).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepository) ListRoomsByUser(db *gorm.DB, userID string) ([]chatmodels.Room, error) {
	var rooms []chatmodels.Room
	err := db.Preload("Participants").Preload("LastMessage").
		Joins("JOIN chat.room_participants p ON p.room_id = \"chat\".\"rooms\".id AND p.user_id = ?", userID).
		Order("\"chat\".\"rooms\".updated_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *ChatRepository) CreateMessage(db *gorm.DB, msg *chatmodels.Message) error {
	if err := db.Create(msg).Error; err != nil {
		return err
	}
	return db.Model(&chatmodels.Room{}).Where("id = ?", msg.RoomID).
		Updates(map[string]interface{}{
			"last_message_id": msg.ID,
			"updated_at":      time.Now(),
		}).Error
}

func (r *ChatRepository) ListMessages(db *gorm.DB, roomID string, limit int) ([]chatmodels.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var messages []chatmodels.Message
	err := db.Where("room_id = ?", roomID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// IncrementUnread bumps the unread counter for every participant except the
// sender.
func (r *ChatRepository) IncrementUnread(db *gorm.DB, roomID, senderID string) error {
	return db.Model(&chatmodels.RoomParticipant{}).
		Where("room_id = ? AND user_id <> ?", roomID, senderID).
		Update("unread_count", gorm.Expr("unread_count + 1")).Error
}

// ResetUnread zeroes the user's counter when the room is opened.
func (r *ChatRepository) ResetUnread(db *gorm.DB, roomID, userID string) error {
	now := time.Now()
	return db.Model(&chatmodels.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Updates(map[string]interface{}{"unread_count": 0, "last_read_at": now}).Error
}

func (r *ChatRepository) IsParticipant(db *gorm.DB, roomID, userID string) (bool, error) {
	var count int64
	err := db.Model(&chatmodels.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	return count > 0, err
}
