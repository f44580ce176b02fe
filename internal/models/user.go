package models

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         UserRole   `gorm:"not null" json:"role"`
	Status       UserStatus `gorm:"default:'active'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
}
