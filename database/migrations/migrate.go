package migrations

import (
	"go-drive-api/internal/database"
	"go-drive-api/internal/models"
)

func Migrate() error {
	db := database.GetDB()

	// Auto migrate tables
	return db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.File{},
	)
}
