package models

import "time"

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
	ProviderApple  = "apple"
)

// User owns notes. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email       string    `gorm:"size:200;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"size:128" json:"-"`
	Avatar      *string   `gorm:"size:500" json:"avatar"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	Provider    string    `gorm:"size:20;not null;default:'email'" json:"provider"`
	AppleUserID *string   `gorm:"size:255;uniqueIndex" json:"-"`
	Role        string    `gorm:"size:20;default:'user'" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
