package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that owns folders and files. IDs are opaque UUID
// strings; every owned row stores the id redundantly so ownership checks
// never need to walk the tree.
type User struct {
	ID        string   `json:"id" gorm:"primarykey;size:36"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null"`
	Password  string   `json:"-" gorm:"not null"`
	Folders   []Folder `json:"folders,omitempty" gorm:"foreignKey:UserID"`
	Files     []File   `json:"files,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the server-side id.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
