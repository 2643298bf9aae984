package models

import (
	"time"
)

// Folder is a node in a user's folder tree. ParentID is nil for root
// folders. The parent chain is always acyclic; the store rejects moves
// that would make a folder its own ancestor.
type Folder struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Name       string    `json:"name" gorm:"not null"`
	ParentID   *uint     `json:"parent_id" gorm:"index"`
	UserID     string    `json:"user_id" gorm:"size:36;not null;index"`
	SubFolders []Folder  `json:"sub_folders,omitempty" gorm:"foreignKey:ParentID"`
	Files      []File    `json:"files,omitempty" gorm:"foreignKey:FolderID"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
