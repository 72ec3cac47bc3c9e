package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account, whether it originated from a local
// registration or an external identity provider.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Country      string    `json:"country" gorm:"size:100"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ImageURL     string    `json:"image_url,omitempty" gorm:"size:512"`
	// ImageStorageKey is the object-storage key backing ImageURL, kept so a
	// replaced profile image can be deleted from the bucket.
	ImageStorageKey string `json:"-" gorm:"size:512"`
	// OTP and OTPExpiresAt are reserved for an email verification flow and are
	// not touched by any exposed operation.
	OTP          string     `json:"-" gorm:"size:16"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate sets the UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
