package store

import (
	"context"

	"go-drive-api/internal/models"

	"gorm.io/gorm"
)

// Guard is the single authorization mechanism: a resource is visible to
// exactly the user whose id it carries. Absent and foreign resources both
// resolve to ErrNotFound so callers cannot probe for other users' ids.
type Guard struct {
	folders *FolderStore
	files   *FileStore
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{
		folders: NewFolderStore(db),
		files:   NewFileStore(db),
	}
}

// Folder resolves a folder the caller owns.
func (g *Guard) Folder(ctx context.Context, callerID string, id uint) (*models.Folder, error) {
	folder, err := g.folders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil || folder.UserID != callerID {
		return nil, ErrNotFound
	}
	return folder, nil
}

// File resolves a file the caller owns.
func (g *Guard) File(ctx context.Context, callerID string, id uint) (*models.File, error) {
	file, err := g.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil || file.UserID != callerID {
		return nil, ErrNotFound
	}
	return file, nil
}
