package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/scriptscope/internal/models"
	"github.com/localnerve/scriptscope/internal/services"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Chapter{},
		&models.Section{},
		&models.ChapterComment{},
		&models.SectionComment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createTestAdmin inserts an admin row and returns its principal context
func createTestAdmin(t *testing.T, db *gorm.DB, email string) *services.PrincipalContext {
	admin := models.Admin{
		FirstName:    "Test",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return &services.PrincipalContext{ID: admin.ID, Kind: models.KindAdmin, Name: admin.FullName()}
}

// createTestUser inserts a user row and returns its principal context
func createTestUser(t *testing.T, db *gorm.DB, email string) *services.PrincipalContext {
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &services.PrincipalContext{ID: user.ID, Kind: models.KindUser, Name: user.FullName()}
}

// createTestChapter inserts a chapter owned by the given admin
func createTestChapter(t *testing.T, db *gorm.DB, adminID uint, name string) uint {
	chapter := models.Chapter{Name: name, AdminID: adminID}
	if err := db.Create(&chapter).Error; err != nil {
		t.Fatalf("Failed to create chapter: %v", err)
	}
	return chapter.ID
}

// createTestSection inserts a section under the given chapter
func createTestSection(t *testing.T, db *gorm.DB, chapterID uint, name, content string) uint {
	section := models.Section{Name: name, Content: &content, ChapterID: chapterID}
	if err := db.Create(&section).Error; err != nil {
		t.Fatalf("Failed to create section: %v", err)
	}
	return section.ID
}
