// chapter_service_test.go
//
// Server-rendered-free JSON backend for the ScriptScope content sharing app
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scriptscope.
// scriptscope is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scriptscope is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scriptscope.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/localnerve/scriptscope/internal/models"
	"github.com/localnerve/scriptscope/internal/services"
	"gorm.io/gorm"
)

// TestCreateChapterRequiresAdmin tests that authentication is checked before
// anything else
func TestCreateChapterRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "user@example.com")

	if _, err := services.CreateChapter(db, nil, "Go Basics"); !errors.Is(err, services.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated for nil principal, got %v", err)
	}
	if _, err := services.CreateChapter(db, user, "Go Basics"); !errors.Is(err, services.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated for user principal, got %v", err)
	}

	var count int64
	db.Model(&models.Chapter{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no chapters after rejected creates, got %d", count)
	}
}

// TestCreateChapterDuplicatePerAdmin tests that names are unique per admin,
// not globally
func TestCreateChapterDuplicatePerAdmin(t *testing.T) {
	db := setupTestDB(t)
	admin1 := createTestAdmin(t, db, "one@example.com")
	admin2 := createTestAdmin(t, db, "two@example.com")

	if _, err := services.CreateChapter(db, admin1, "Go Basics"); err != nil {
		t.Fatalf("Failed to create chapter: %v", err)
	}

	if _, err := services.CreateChapter(db, admin1, "Go Basics"); !errors.Is(err, services.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName for same admin, got %v", err)
	}

	// A different admin may reuse the name
	if _, err := services.CreateChapter(db, admin2, "Go Basics"); err != nil {
		t.Errorf("Expected second admin to reuse the name, got %v", err)
	}
}

// TestRenameChapter tests rename, the same-name no-op, and duplicate detection
func TestRenameChapter(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "one@example.com")
	chA := createTestChapter(t, db, admin.ID, "Alpha")
	createTestChapter(t, db, admin.ID, "Beta")

	if err := services.RenameChapter(db, admin, chA, "Gamma"); err != nil {
		t.Fatalf("Failed to rename chapter: %v", err)
	}
	var chapter models.Chapter
	db.First(&chapter, chA)
	if chapter.Name != "Gamma" {
		t.Errorf("Expected name Gamma, got %q", chapter.Name)
	}

	// Renaming to the current name is a no-op
	if err := services.RenameChapter(db, admin, chA, "Gamma"); err != nil {
		t.Errorf("Expected same-name rename to succeed, got %v", err)
	}

	if err := services.RenameChapter(db, admin, chA, "Beta"); !errors.Is(err, services.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}

	if err := services.RenameChapter(db, admin, 9999, "Delta"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing chapter, got %v", err)
	}
}

// TestRenameChapterForeignAdmin tests that ownership denial leaves the store
// unchanged
func TestRenameChapterForeignAdmin(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestAdmin(t, db, "owner@example.com")
	intruder := createTestAdmin(t, db, "intruder@example.com")
	chID := createTestChapter(t, db, owner.ID, "Alpha")

	if err := services.RenameChapter(db, intruder, chID, "Hijacked"); !errors.Is(err, services.ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied, got %v", err)
	}

	var chapter models.Chapter
	db.First(&chapter, chID)
	if chapter.Name != "Alpha" {
		t.Errorf("Expected name unchanged after denied rename, got %q", chapter.Name)
	}
	if chapter.AdminID != owner.ID {
		t.Errorf("Expected owner unchanged, got admin %d", chapter.AdminID)
	}
}

// TestDeleteChapterCascade tests that the delete takes sections and both
// comment kinds with it, and nothing else
func TestDeleteChapterCascade(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "one@example.com")
	user := createTestUser(t, db, "reader@example.com")

	doomed := createTestChapter(t, db, admin.ID, "Doomed")
	sec1 := createTestSection(t, db, doomed, "First", "text")
	sec2 := createTestSection(t, db, doomed, "Second", "text")
	db.Create(&models.ChapterComment{Content: "nice", UserID: user.ID, ChapterID: doomed})
	db.Create(&models.SectionComment{Content: "good", UserID: user.ID, SectionID: sec1})
	db.Create(&models.SectionComment{Content: "fine", UserID: user.ID, SectionID: sec2})

	// A sibling chapter that must survive
	kept := createTestChapter(t, db, admin.ID, "Kept")
	keptSec := createTestSection(t, db, kept, "First", "text")
	db.Create(&models.SectionComment{Content: "stays", UserID: user.ID, SectionID: keptSec})

	if err := services.DeleteChapter(db, admin, doomed); err != nil {
		t.Fatalf("Failed to delete chapter: %v", err)
	}

	var count int64
	db.Model(&models.Chapter{}).Where("id = ?", doomed).Count(&count)
	if count != 0 {
		t.Error("Expected chapter deleted")
	}
	db.Model(&models.Section{}).Where("chapter_id = ?", doomed).Count(&count)
	if count != 0 {
		t.Errorf("Expected sections deleted, %d remain", count)
	}
	db.Model(&models.ChapterComment{}).Where("chapter_id = ?", doomed).Count(&count)
	if count != 0 {
		t.Errorf("Expected chapter comments deleted, %d remain", count)
	}
	db.Model(&models.SectionComment{}).Where("section_id IN ?", []uint{sec1, sec2}).Count(&count)
	if count != 0 {
		t.Errorf("Expected section comments deleted, %d remain", count)
	}

	// The sibling is untouched
	db.Model(&models.SectionComment{}).Where("section_id = ?", keptSec).Count(&count)
	if count != 1 {
		t.Errorf("Expected sibling comment to survive, got %d", count)
	}
}

// TestDeleteChapterRollback tests that a failure late in the cascade rolls
// the whole delete back, leaving no partial state
func TestDeleteChapterRollback(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "one@example.com")
	user := createTestUser(t, db, "reader@example.com")
	chID := createTestChapter(t, db, admin.ID, "Alpha")
	secID := createTestSection(t, db, chID, "Intro", "text")
	db.Create(&models.ChapterComment{Content: "nice", UserID: user.ID, ChapterID: chID})
	db.Create(&models.SectionComment{Content: "good", UserID: user.ID, SectionID: secID})

	// Fail the delete of the chapter row itself, which runs last, after the
	// comment and section deletes have already executed in the transaction
	err := db.Callback().Delete().Before("gorm:delete").Register("fail_chapter_row", func(tx *gorm.DB) {
		if tx.Statement.Table == "chapters" {
			tx.AddError(errors.New("storage failure"))
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}

	if err := services.DeleteChapter(db, admin, chID); err == nil {
		t.Fatal("Expected the injected failure to propagate")
	}

	var count int64
	db.Model(&models.Chapter{}).Where("id = ?", chID).Count(&count)
	if count != 1 {
		t.Error("Expected chapter to survive the rollback")
	}
	db.Model(&models.Section{}).Where("chapter_id = ?", chID).Count(&count)
	if count != 1 {
		t.Errorf("Expected section to survive the rollback, got %d", count)
	}
	db.Model(&models.ChapterComment{}).Where("chapter_id = ?", chID).Count(&count)
	if count != 1 {
		t.Errorf("Expected chapter comment to survive the rollback, got %d", count)
	}
	db.Model(&models.SectionComment{}).Where("section_id = ?", secID).Count(&count)
	if count != 1 {
		t.Errorf("Expected section comment to survive the rollback, got %d", count)
	}
}

// TestDeleteChapterForeignAdmin tests that a foreign admin cannot delete
func TestDeleteChapterForeignAdmin(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestAdmin(t, db, "owner@example.com")
	intruder := createTestAdmin(t, db, "intruder@example.com")
	chID := createTestChapter(t, db, owner.ID, "Alpha")

	if err := services.DeleteChapter(db, intruder, chID); !errors.Is(err, services.ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied, got %v", err)
	}

	var count int64
	db.Model(&models.Chapter{}).Where("id = ?", chID).Count(&count)
	if count != 1 {
		t.Error("Expected chapter to survive denied delete")
	}
}

// TestListChaptersSearchAndSort tests the public index filter and orderings
func TestListChaptersSearchAndSort(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "one@example.com")

	base := time.Now().UTC().Add(-time.Hour)
	for i, name := range []string{"Zebra Patterns", "Alpha Go", "Middle Ground"} {
		chapter := models.Chapter{Name: name, AdminID: admin.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Create(&chapter).Error; err != nil {
			t.Fatalf("Failed to create chapter: %v", err)
		}
	}

	chapters, err := services.ListChapters(db, "", "name")
	if err != nil {
		t.Fatalf("Failed to list chapters: %v", err)
	}
	if len(chapters) != 3 || chapters[0].Name != "Alpha Go" || chapters[2].Name != "Zebra Patterns" {
		t.Errorf("Expected name-ascending order, got %+v", chapterNames(chapters))
	}

	chapters, err = services.ListChapters(db, "", "date")
	if err != nil {
		t.Fatalf("Failed to list chapters by date: %v", err)
	}
	if len(chapters) != 3 || chapters[0].Name != "Middle Ground" {
		t.Errorf("Expected newest chapter first, got %+v", chapterNames(chapters))
	}

	// Case-insensitive substring match
	chapters, err = services.ListChapters(db, "aLpHa", "name")
	if err != nil {
		t.Fatalf("Failed to search chapters: %v", err)
	}
	if len(chapters) != 1 || chapters[0].Name != "Alpha Go" {
		t.Errorf("Expected only Alpha Go, got %+v", chapterNames(chapters))
	}
}

func chapterNames(chapters []models.Chapter) []string {
	names := make([]string, 0, len(chapters))
	for i := range chapters {
		names = append(names, chapters[i].Name)
	}
	return names
}

// TestGetChapterAuthBeforeExistence tests that an anonymous caller learns
// nothing about whether a chapter exists
func TestGetChapterAuthBeforeExistence(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.GetChapter(db, nil, 9999); !errors.Is(err, services.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated for missing chapter without login, got %v", err)
	}

	user := createTestUser(t, db, "reader@example.com")
	if _, err := services.GetChapter(db, user, 9999); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound once authenticated, got %v", err)
	}
}

// TestGetChapterDetail tests the read model shape
func TestGetChapterDetail(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "one@example.com")
	user := createTestUser(t, db, "reader@example.com")
	chID := createTestChapter(t, db, admin.ID, "Alpha")
	createTestSection(t, db, chID, "Intro", "text")
	createTestSection(t, db, chID, "Deep Dive", "text")
	db.Create(&models.ChapterComment{Content: "nice", UserID: user.ID, ChapterID: chID})

	// Readers who do not own the chapter may still view it
	detail, err := services.GetChapter(db, user, chID)
	if err != nil {
		t.Fatalf("Failed to get chapter: %v", err)
	}
	if detail.Chapter.Name != "Alpha" {
		t.Errorf("Expected chapter Alpha, got %q", detail.Chapter.Name)
	}
	if len(detail.Sections) != 2 || detail.Sections[0].Name != "Intro" {
		t.Errorf("Expected sections in id order, got %+v", detail.Sections)
	}
	if len(detail.Comments) != 1 || detail.Comments[0].UserName != "Test User" {
		t.Errorf("Expected one comment with author name, got %+v", detail.Comments)
	}
}

// TestAdminChapters tests that the edit listing is scoped to the acting admin
func TestAdminChapters(t *testing.T) {
	db := setupTestDB(t)
	admin1 := createTestAdmin(t, db, "one@example.com")
	admin2 := createTestAdmin(t, db, "two@example.com")
	createTestChapter(t, db, admin1.ID, "Beta")
	createTestChapter(t, db, admin1.ID, "Alpha")
	createTestChapter(t, db, admin2.ID, "Other")

	chapters, err := services.AdminChapters(db, admin1)
	if err != nil {
		t.Fatalf("Failed to list admin chapters: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("Expected 2 chapters, got %d", len(chapters))
	}
	if chapters[0].Name != "Alpha" || chapters[1].Name != "Beta" {
		t.Errorf("Expected name order, got %+v", chapterNames(chapters))
	}
}

// TestGetDashboardStats tests the per-admin totals
func TestGetDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestAdmin(t, db, "one@example.com")
	other := createTestAdmin(t, db, "two@example.com")
	user := createTestUser(t, db, "reader@example.com")

	ch1 := createTestChapter(t, db, admin.ID, "Alpha")
	ch2 := createTestChapter(t, db, admin.ID, "Beta")
	createTestSection(t, db, ch1, "One", "text")
	createTestSection(t, db, ch1, "Two", "text")
	createTestSection(t, db, ch2, "Three", "text")
	db.Create(&models.ChapterComment{Content: "nice", UserID: user.ID, ChapterID: ch1})

	// Other admin's content must not leak into the totals
	foreign := createTestChapter(t, db, other.ID, "Foreign")
	createTestSection(t, db, foreign, "Hidden", "text")
	db.Create(&models.ChapterComment{Content: "hidden", UserID: user.ID, ChapterID: foreign})

	stats, err := services.GetDashboardStats(db, admin)
	if err != nil {
		t.Fatalf("Failed to get dashboard stats: %v", err)
	}
	if stats.Chapters != 2 || stats.Sections != 3 || stats.Comments != 1 {
		t.Errorf("Expected 2/3/1, got %d/%d/%d", stats.Chapters, stats.Sections, stats.Comments)
	}
}
