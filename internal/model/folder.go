package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is a single-owner container for files. The composite unique index on
// (user_id, name) makes name uniqueness per owner a database guarantee rather
// than a check-then-insert race.
type Folder struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_folder_owner_name"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index;uniqueIndex:idx_folder_owner_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. Deleting a folder cascades to its file records; the backing
	// objects stay in the bucket until each file is deleted individually.
	Files []File `json:"files,omitempty" gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID before creating the record.
func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
