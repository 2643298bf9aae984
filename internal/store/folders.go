package store

import (
	"context"
	"errors"

	"go-drive-api/internal/models"

	"gorm.io/gorm"
)

// FolderStore provides CRUD and tree-aware queries over folders.
type FolderStore struct {
	db *gorm.DB
}

func NewFolderStore(db *gorm.DB) *FolderStore {
	return &FolderStore{db: db}
}

// GetByID fetches a folder with its direct subfolders and files. Returns
// (nil, nil) when no such folder exists; ownership is the caller's concern.
func (s *FolderStore) GetByID(ctx context.Context, id uint) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.WithContext(ctx).
		Preload("SubFolders").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Omit("content")
		}).
		First(&folder, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListByUser returns every folder owned by userID, each with direct
// subfolders and files populated. Order follows insertion.
func (s *FolderStore) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	var folders []models.Folder
	err := s.db.WithContext(ctx).
		Preload("SubFolders").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Omit("content")
		}).
		Where("user_id = ?", userID).
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// Create inserts a folder owned by ownerID. Any user id present on the
// input is discarded. A dangling ParentID fails with ErrIntegrity.
func (s *FolderStore) Create(ctx context.Context, folder *models.Folder, ownerID string) error {
	folder.ID = 0
	folder.UserID = ownerID

	if folder.ParentID != nil {
		exists, err := s.folderExists(ctx, *folder.ParentID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrIntegrity
		}
	}

	return s.db.WithContext(ctx).Create(folder).Error
}

// Update replaces the mutable fields (name, parent) of an existing folder.
// A missing id is a silent no-op so that update racing a delete does not
// fail. A move is validated against the new parent's ancestor chain before
// anything is written.
func (s *FolderStore) Update(ctx context.Context, folder *models.Folder) error {
	var tracked models.Folder
	err := s.db.WithContext(ctx).First(&tracked, folder.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if folder.ParentID != nil {
		exists, err := s.folderExists(ctx, *folder.ParentID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrIntegrity
		}
		if err := s.checkNoCycle(ctx, folder.ID, *folder.ParentID); err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Model(&tracked).
		Select("name", "parent_id").
		Updates(map[string]interface{}{
			"name":      folder.Name,
			"parent_id": folder.ParentID,
		}).Error
}

// Delete removes the folder, every descendant folder and every file in the
// deleted subtree as one transaction. Deleting an already-missing folder
// is a no-op.
func (s *FolderStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteSubtree(tx, id)
	})
}

// deleteSubtree walks the tree post-order: children first, then the
// node's files, then the node itself.
func deleteSubtree(tx *gorm.DB, id uint) error {
	var children []models.Folder
	if err := tx.Select("id").Where("parent_id = ?", id).Find(&children).Error; err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteSubtree(tx, child.ID); err != nil {
			return err
		}
	}
	if err := tx.Where("folder_id = ?", id).Delete(&models.File{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Folder{}, id).Error
}

// checkNoCycle walks up from newParentID; if folderID appears in the
// ancestor chain the move is rejected. The walk is bounded by the total
// folder count so corrupt data cannot loop it forever.
func (s *FolderStore) checkNoCycle(ctx context.Context, folderID, newParentID uint) error {
	if folderID == newParentID {
		return ErrCycle
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Folder{}).Count(&total).Error; err != nil {
		return err
	}

	current := newParentID
	for steps := int64(0); steps <= total; steps++ {
		var ancestor models.Folder
		err := s.db.WithContext(ctx).Select("id", "parent_id").First(&ancestor, current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		if *ancestor.ParentID == folderID {
			return ErrCycle
		}
		current = *ancestor.ParentID
	}
	return ErrCycle
}

func (s *FolderStore) folderExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
