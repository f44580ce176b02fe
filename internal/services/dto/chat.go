package dto

import "time"

type SendMessageRequest struct {
	RecipientID string  `json:"recipient_id" validate:"required,uuid"`
	ClaimID     *string `json:"claim_id,omitempty" validate:"omitempty,uuid"`
	Content     string  `json:"content" validate:"required,max=4000"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomResponse struct {
	ID          string           `json:"id"`
	ClaimID     *string          `json:"claim_id,omitempty"`
	PartnerID   string           `json:"partner_id"`
	UnreadCount int              `json:"unread_count"`
	LastMessage *MessageResponse `json:"last_message,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type RoomListResponse struct {
	Rooms       []RoomResponse `json:"rooms"`
	TotalUnread int            `json:"total_unread"`
}

type MessageListResponse struct {
	RoomID   string            `json:"room_id"`
	Messages []MessageResponse `json:"messages"`
}
