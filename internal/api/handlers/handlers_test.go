package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-drive-api/internal/api/routes"
	"go-drive-api/internal/config"
	"go-drive-api/internal/database"
	"go-drive-api/internal/models"
	"go-drive-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Folder{}, &models.File{}))
	database.DB = db

	cfg, err := config.Load()
	require.NoError(t, err)

	router := gin.New()
	routes.SetupRoutes(router, cfg)
	return router, cfg
}

func signup(t *testing.T, cfg *config.Config, email string) (string, string) {
	t.Helper()

	user := models.User{Email: email, Password: "irrelevant"}
	require.NoError(t, database.GetDB().Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, cfg)
	require.NoError(t, err)
	return user.ID, token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createFolderHTTP(t *testing.T, router *gin.Engine, token, name string, parentID *uint) uint {
	t.Helper()

	body := map[string]interface{}{"name": name}
	if parentID != nil {
		body["parent_id"] = *parentID
	}
	w := doJSON(router, http.MethodPost, "/api/v1/folders", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var folder models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &folder))
	return folder.ID
}

func uploadFileHTTP(t *testing.T, router *gin.Engine, token, name string, folderID uint, content []byte) uint {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/api/v1/files/upload", token, map[string]interface{}{
		"name":      name,
		"content":   base64.StdEncoding.EncodeToString(content),
		"folder_id": folderID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// The issued token opens the protected surface.
	w = doJSON(router, http.MethodGet, "/api/v1/folders/me", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong password is rejected.
	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/folders/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/files/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFolderCascadeEndToEnd(t *testing.T) {
	router, cfg := setupRouter(t)
	_, tokenA := signup(t, cfg, "alice@example.com")
	_, tokenB := signup(t, cfg, "bob@example.com")

	docs := createFolderHTTP(t, router, tokenA, "Docs", nil)
	year := createFolderHTTP(t, router, tokenA, "2024", &docs)
	fileID := uploadFileHTTP(t, router, tokenA, "a.txt", year, []byte("hello drive"))

	// Another user cannot see the file, and cannot tell it exists.
	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/files/%d", fileID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/folders/%d", year), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleting the root removes the whole subtree.
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/folders/%d", docs), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/folders/%d", year), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/files/%d", fileID), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleting again answers not found without touching anything else.
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/folders/%d", docs), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFolderMoveCycleRejectedOverHTTP(t *testing.T) {
	router, cfg := setupRouter(t)
	_, token := signup(t, cfg, "alice@example.com")

	a := createFolderHTTP(t, router, token, "a", nil)
	b := createFolderHTTP(t, router, token, "b", &a)
	c := createFolderHTTP(t, router, token, "c", &b)

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/folders/%d", a), token, map[string]interface{}{
		"name":      "a",
		"parent_id": c,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// The rejected move left the tree intact.
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/folders/%d", a), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var folder models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &folder))
	assert.Nil(t, folder.ParentID)
}

func TestFolderCreateUnderForeignParentRejected(t *testing.T) {
	router, cfg := setupRouter(t)
	_, tokenA := signup(t, cfg, "alice@example.com")
	_, tokenB := signup(t, cfg, "bob@example.com")

	aliceRoot := createFolderHTTP(t, router, tokenA, "Docs", nil)

	w := doJSON(router, http.MethodPost, "/api/v1/folders", tokenB, map[string]interface{}{
		"name":      "intruder",
		"parent_id": aliceRoot,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIDMismatchIsBadRequest(t *testing.T) {
	router, cfg := setupRouter(t)
	_, token := signup(t, cfg, "alice@example.com")

	folder := createFolderHTTP(t, router, token, "Docs", nil)
	file := uploadFileHTTP(t, router, token, "a.txt", folder, []byte("x"))

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/folders/%d", folder), token, map[string]interface{}{
		"id":   folder + 1,
		"name": "renamed",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/files/%d", file), token, map[string]interface{}{
		"id":        file + 1,
		"name":      "renamed",
		"folder_id": folder,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadIntoForeignFolderRejected(t *testing.T) {
	router, cfg := setupRouter(t)
	_, tokenA := signup(t, cfg, "alice@example.com")
	_, tokenB := signup(t, cfg, "bob@example.com")

	aliceRoot := createFolderHTTP(t, router, tokenA, "Docs", nil)

	w := doJSON(router, http.MethodPost, "/api/v1/files/upload", tokenB, map[string]interface{}{
		"name":      "sneaky.txt",
		"content":   base64.StdEncoding.EncodeToString([]byte("x")),
		"folder_id": aliceRoot,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadReturnsRawBytes(t *testing.T) {
	router, cfg := setupRouter(t)
	_, token := signup(t, cfg, "alice@example.com")

	folder := createFolderHTTP(t, router, token, "Docs", nil)
	content := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0x01, 0x02}
	file := uploadFileHTTP(t, router, token, "blob.bin", folder, content)

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/files/download/%d", file), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "blob.bin")
}

func TestGetFilePreview(t *testing.T) {
	router, cfg := setupRouter(t)
	_, token := signup(t, cfg, "alice@example.com")
	folder := createFolderHTTP(t, router, token, "Docs", nil)

	textFile := uploadFileHTTP(t, router, token, "notes.txt", folder, []byte("just some notes"))
	binFile := uploadFileHTTP(t, router, token, "data.bin", folder, []byte{0x00, 0x01, 0x02})

	var resp struct {
		Preview string `json:"preview"`
	}

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/files/%d", textFile), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "just some notes", resp.Preview)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/files/%d", binFile), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "[Preview not available]", resp.Preview)
}

func TestListMineIsScopedToCaller(t *testing.T) {
	router, cfg := setupRouter(t)
	idA, tokenA := signup(t, cfg, "alice@example.com")
	_, tokenB := signup(t, cfg, "bob@example.com")

	folderA := createFolderHTTP(t, router, tokenA, "Docs", nil)
	uploadFileHTTP(t, router, tokenA, "a.txt", folderA, []byte("x"))
	folderB := createFolderHTTP(t, router, tokenB, "Private", nil)
	uploadFileHTTP(t, router, tokenB, "b.txt", folderB, []byte("y"))

	w := doJSON(router, http.MethodGet, "/api/v1/folders/me", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var folderList struct {
		Folders []models.Folder `json:"folders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &folderList))
	require.Len(t, folderList.Folders, 1)
	assert.Equal(t, idA, folderList.Folders[0].UserID)

	w = doJSON(router, http.MethodGet, "/api/v1/files/me", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fileList struct {
		Files []struct {
			Name string `json:"name"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fileList))
	require.Len(t, fileList.Files, 1)
	assert.Equal(t, "a.txt", fileList.Files[0].Name)
}

func TestExportJSON(t *testing.T) {
	router, cfg := setupRouter(t)
	_, token := signup(t, cfg, "alice@example.com")

	folder := createFolderHTTP(t, router, token, "Docs", nil)
	uploadFileHTTP(t, router, token, "a.txt", folder, []byte("hello"))

	w := doJSON(router, http.MethodGet, "/api/v1/export/json", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "files_export.json")

	var exported []struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "a.txt", exported[0].Name)
	assert.Equal(t, int64(5), exported[0].Size)
}
