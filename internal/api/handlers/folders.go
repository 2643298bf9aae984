package handlers

import (
	"errors"
	"net/http"

	"go-drive-api/internal/database"
	"go-drive-api/internal/models"
	"go-drive-api/internal/store"
	"go-drive-api/internal/websocket"

	"github.com/gin-gonic/gin"
)

// ListMyFolders handles listing all folders owned by the caller
func ListMyFolders(c *gin.Context) {
	userID := currentUserID(c)

	folders, err := store.NewFolderStore(database.GetDB()).ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// GetFolder handles retrieving a single folder with its direct contents
func GetFolder(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	folder, err := store.NewGuard(database.GetDB()).Folder(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folder"})
		return
	}

	c.JSON(http.StatusOK, folder)
}

// CreateFolder handles folder creation
func CreateFolder(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,min=1,max=255"`
		ParentID *uint  `json:"parent_id,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	userID := currentUserID(c)
	db := database.GetDB()

	// The parent must exist and belong to the caller before anything is
	// written. Missing and foreign parents get the same answer.
	if input.ParentID != nil {
		if _, err := store.NewGuard(db).Folder(c.Request.Context(), userID, *input.ParentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Parent folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate parent folder"})
			return
		}
	}

	folder := models.Folder{
		Name:     input.Name,
		ParentID: input.ParentID,
	}

	if err := store.NewFolderStore(db).Create(c.Request.Context(), &folder, userID); err != nil {
		if errors.Is(err, store.ErrIntegrity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// UpdateFolder handles renaming and moving a folder
func UpdateFolder(c *gin.Context) {
	var input struct {
		ID       uint   `json:"id"`
		Name     string `json:"name" binding:"required,min=1,max=255"`
		ParentID *uint  `json:"parent_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name is required"})
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	if input.ID != 0 && input.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrBadRequest.Error()})
		return
	}

	userID := currentUserID(c)
	db := database.GetDB()
	guard := store.NewGuard(db)

	if _, err := guard.Folder(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folder"})
		return
	}

	if input.ParentID != nil {
		if _, err := guard.Folder(c.Request.Context(), userID, *input.ParentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Parent folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate parent folder"})
			return
		}
	}

	folder := models.Folder{
		ID:       id,
		Name:     input.Name,
		ParentID: input.ParentID,
	}

	if err := store.NewFolderStore(db).Update(c.Request.Context(), &folder); err != nil {
		switch {
		case errors.Is(err, store.ErrCycle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder cannot be moved into its own subtree"})
		case errors.Is(err, store.ErrIntegrity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent folder not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update folder"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder updated successfully"})
}

// DeleteFolder handles folder deletion; subfolders and contained files go
// with it.
func DeleteFolder(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	db := database.GetDB()
	if _, err := store.NewGuard(db).Folder(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folder"})
		return
	}

	if err := store.NewFolderStore(db).Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder"})
		return
	}

	websocket.GetManager().NotifyUser(userID, websocket.Notification{
		Type:     websocket.FolderDeleted,
		FolderID: id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully"})
}
