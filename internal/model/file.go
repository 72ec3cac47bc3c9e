package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is an uploaded object inside a folder. Ownership is transitive through
// the folder; the record carries no owner id of its own.
type File struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	StorageKey  string    `json:"-" gorm:"size:512;not null"`
	ContentType string    `json:"content_type" gorm:"size:127"`
	Size        int64     `json:"size"`
	FolderID    uuid.UUID `json:"folder_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets the UUID before creating the record.
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
