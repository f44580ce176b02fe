package chat

import "time"

type Message struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RoomID   string `gorm:"index;not null" json:"room_id"`
	SenderID string `gorm:"index;not null" json:"sender_id"`
	Type     string `gorm:"default:'text'" json:"type"` // text, image, file, system
	Content  string `gorm:"type:text" json:"content"`
	Status   string `gorm:"default:'sent'" json:"status"` // sent, delivered, read
	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "chat.messages"
}
