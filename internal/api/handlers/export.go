package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"go-drive-api/internal/database"
	"go-drive-api/internal/store"

	"github.com/gin-gonic/gin"
)

func ExportCSV(c *gin.Context) {
	userID := currentUserID(c)

	files, err := store.NewFileStore(database.GetDB()).ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=files_export.csv")

	writer := csv.NewWriter(c.Writer)
	// Write header
	if err := writer.Write([]string{"ID", "Name", "Folder ID", "Size", "Created At", "Updated At"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV header"})
		return
	}

	// Write data
	for _, f := range files {
		if err := writer.Write([]string{
			fmt.Sprint(f.ID),
			f.Name,
			fmt.Sprint(f.FolderID),
			fmt.Sprint(f.Size),
			f.CreatedAt.String(),
			f.UpdatedAt.String(),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV data"})
			return
		}
	}

	writer.Flush()
}

func ExportJSON(c *gin.Context) {
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

	c.Header("Content-Disposition", "attachment;filename=files_export.json")

	jsonData, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal JSON"})
		return
	}

	c.Data(http.StatusOK, "application/json", jsonData)
}
