package store

import (
	"context"
	"errors"

	"go-drive-api/internal/models"

	"gorm.io/gorm"
)

// FileStore provides CRUD and download-oriented queries over files.
type FileStore struct {
	db *gorm.DB
}

func NewFileStore(db *gorm.DB) *FileStore {
	return &FileStore{db: db}
}

// GetByID returns the file with its owning folder populated, content
// included. Returns (nil, nil) when absent.
func (s *FileStore) GetByID(ctx context.Context, id uint) (*models.File, error) {
	var file models.File
	err := s.db.WithContext(ctx).Preload("Folder").First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByUser returns the metadata of every file owned by userID, folder
// populated. The blob column is left out of list responses.
func (s *FileStore) ListByUser(ctx context.Context, userID string) ([]models.File, error) {
	var files []models.File
	err := s.db.WithContext(ctx).
		Omit("content").
		Preload("Folder").
		Where("user_id = ?", userID).
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Create inserts a file owned by ownerID into an existing folder. The
// owner on the input is never trusted; a dangling FolderID fails with
// ErrIntegrity.
func (s *FileStore) Create(ctx context.Context, file *models.File, ownerID string) error {
	file.ID = 0
	file.UserID = ownerID
	file.Size = int64(len(file.Content))

	exists, err := s.folderExists(ctx, file.FolderID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrIntegrity
	}

	return s.db.WithContext(ctx).Create(file).Error
}

// Update replaces name, content and folder of an existing file. Missing
// ids are a silent no-op. A folder change must point at an existing
// folder; files are leaves, so no cycle check applies.
func (s *FileStore) Update(ctx context.Context, file *models.File) error {
	var tracked models.File
	err := s.db.WithContext(ctx).Select("id", "folder_id").First(&tracked, file.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if file.FolderID != tracked.FolderID {
		exists, err := s.folderExists(ctx, file.FolderID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrIntegrity
		}
	}

	updates := map[string]interface{}{
		"name":      file.Name,
		"folder_id": file.FolderID,
	}
	if file.Content != nil {
		updates["content"] = file.Content
		updates["size"] = int64(len(file.Content))
	}

	return s.db.WithContext(ctx).Model(&tracked).Updates(updates).Error
}

// Delete removes a single file; deleting an absent id is a no-op.
func (s *FileStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.File{}, id).Error
}

func (s *FileStore) folderExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
