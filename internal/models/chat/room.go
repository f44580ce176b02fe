package chat

import "time"

// Room is a two-party conversation, created lazily on the first message
// between the pair. PairKey is the sorted participant pair; its unique index
// is what keeps two concurrent first messages from creating two rooms.
type Room struct {
	ID            string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PairKey       string  `gorm:"uniqueIndex;not null" json:"-"`
	ClaimID       *string `gorm:"index" json:"claim_id"`
	LastMessageID *string `gorm:"index" json:"last_message_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Participants []RoomParticipant `gorm:"foreignKey:RoomID" json:"participants,omitempty"`
	LastMessage  *Message          `gorm:"foreignKey:LastMessageID" json:"last_message,omitempty"`
}

func (Room) TableName() string {
	return "chat.rooms"
}

// RoomParticipant tracks one user's membership and unread counter.
// The counter resets when the user opens the room.
type RoomParticipant struct {
	ID          string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RoomID      string     `gorm:"index;not null" json:"room_id"`
	UserID      string     `gorm:"index;not null" json:"user_id"`
	UnreadCount int        `gorm:"default:0" json:"unread_count"`
	LastReadAt  *time.Time `json:"last_read_at"`
	JoinedAt    time.Time  `json:"joined_at"`
}

func (RoomParticipant) TableName() string {
	return "chat.room_participants"
}
