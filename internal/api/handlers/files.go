package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"go-drive-api/internal/config"
	"go-drive-api/internal/database"
	"go-drive-api/internal/models"
	"go-drive-api/internal/store"
	"go-drive-api/internal/utils"
	"go-drive-api/internal/websocket"

	"github.com/gin-gonic/gin"
)

// fileResponse is the metadata shape returned for files; content only
// travels through the download path.
type fileResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	FolderID uint   `json:"folder_id"`
	Size     int64  `json:"size"`
}

func toFileResponse(file *models.File) fileResponse {
	return fileResponse{
		ID:       file.ID,
		Name:     file.Name,
		FolderID: file.FolderID,
		Size:     file.Size,
	}
}

// ListMyFiles handles listing all files owned by the caller
func ListMyFiles(c *gin.Context) {
	userID := currentUserID(c)

	files, err := store.NewFileStore(database.GetDB()).ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	responses := make([]fileResponse, 0, len(files))
	for i := range files {
		responses = append(responses, toFileResponse(&files[i]))
	}

	c.JSON(http.StatusOK, gin.H{"files": responses})
}

// GetFile handles retrieving a single file's metadata plus a short text
// preview of its content.
func GetFile(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	file, err := store.NewGuard(database.GetDB()).File(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        file.ID,
		"name":      file.Name,
		"folder_id": file.FolderID,
		"size":      file.Size,
		"preview":   utils.Preview(file.Content),
	})
}

// UploadFile handles creating a file from an inline base64 payload
func UploadFile(c *gin.Context) {
	cfg, err := config.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required,min=1,max=255"`
		Content  string `json:"content" binding:"required"`
		FolderID uint   `json:"folder_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: name, content and folder_id are required"})
		return
	}

	content, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content must be base64 encoded"})
		return
	}

	if int64(len(content)) > cfg.Upload.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	userID := currentUserID(c)
	db := database.GetDB()

	if _, err := store.NewGuard(db).Folder(c.Request.Context(), userID, input.FolderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate folder"})
		return
	}

	file := models.File{
		Name:     input.Name,
		Content:  content,
		FolderID: input.FolderID,
	}

	if err := store.NewFileStore(db).Create(c.Request.Context(), &file, userID); err != nil {
		if errors.Is(err, store.ErrIntegrity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	websocket.GetManager().NotifyUser(userID, websocket.Notification{
		Type:   websocket.UploadComplete,
		FileID: file.ID,
	})

	c.JSON(http.StatusCreated, toFileResponse(&file))
}

// UpdateFile handles renaming, replacing content and moving a file between
// folders.
func UpdateFile(c *gin.Context) {
	var input struct {
		ID       uint    `json:"id"`
		Name     string  `json:"name" binding:"required,min=1,max=255"`
		Content  *string `json:"content"`
		FolderID uint    `json:"folder_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: name and folder_id are required"})
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if input.ID != 0 && input.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrBadRequest.Error()})
		return
	}

	userID := currentUserID(c)
	db := database.GetDB()
	guard := store.NewGuard(db)

	existing, err := guard.File(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	if input.FolderID != existing.FolderID {
		if _, err := guard.Folder(c.Request.Context(), userID, input.FolderID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate folder"})
			return
		}
	}

	file := models.File{
		ID:       id,
		Name:     input.Name,
		FolderID: input.FolderID,
	}
	if input.Content != nil {
		content, err := base64.StdEncoding.DecodeString(*input.Content)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content must be base64 encoded"})
			return
		}
		file.Content = content
	}

	if err := store.NewFileStore(db).Update(c.Request.Context(), &file); err != nil {
		if errors.Is(err, store.ErrIntegrity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File updated successfully"})
}

// DeleteFile handles removing a single file
func DeleteFile(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	db := database.GetDB()
	if _, err := store.NewGuard(db).File(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	if err := store.NewFileStore(db).Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	websocket.GetManager().NotifyUser(userID, websocket.Notification{
		Type:   websocket.FileDeleted,
		FileID: id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// DownloadFile handles returning the raw stored bytes
func DownloadFile(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	file, err := store.NewGuard(database.GetDB()).File(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, "application/octet-stream", file.Content)
}

// FileThumbnail handles rendering a scaled PNG preview for image files
func FileThumbnail(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	file, err := store.NewGuard(database.GetDB()).File(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	size := utils.ParseIntOption(c.Query("size"))
	thumb, err := utils.Thumbnail(file.Content, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a supported image"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.Name))
	c.Data(http.StatusOK, "image/png", thumb)
}
