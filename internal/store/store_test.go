package store

import (
	"context"
	"fmt"
	"testing"

	"go-drive-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Folder{}, &models.File{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "irrelevant"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createFolder(t *testing.T, db *gorm.DB, owner string, name string, parentID *uint) *models.Folder {
	t.Helper()

	folder := &models.Folder{Name: name, ParentID: parentID}
	require.NoError(t, NewFolderStore(db).Create(context.Background(), folder, owner))
	return folder
}

func createFile(t *testing.T, db *gorm.DB, owner string, name string, folderID uint, content []byte) *models.File {
	t.Helper()

	file := &models.File{Name: name, FolderID: folderID, Content: content}
	require.NoError(t, NewFileStore(db).Create(context.Background(), file, owner))
	return file
}
