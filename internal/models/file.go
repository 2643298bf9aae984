package models

import (
	"time"
)

// File is an uploaded binary stored inline alongside its metadata.
// UserID always equals the owning folder's UserID.
type File struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null"`
	Content   []byte    `json:"-" gorm:"type:bytea"`
	Size      int64     `json:"size"`
	FolderID  uint      `json:"folder_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;index"`
	Folder    *Folder   `json:"folder,omitempty" gorm:"foreignKey:FolderID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
