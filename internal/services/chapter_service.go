// chapter_service.go
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

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/scriptscope/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ChapterDetail is the read model for the chapter page
type ChapterDetail struct {
	Chapter  models.Chapter
	Sections []models.Section
	Comments []CommentView
}

// DashboardStats summarizes an admin's content for the dashboard
type DashboardStats struct {
	Chapters int64 `json:"chapters"`
	Sections int64 `json:"sections"`
	Comments int64 `json:"comments"`
}

// ListChapters returns chapters for the public index. Search is a
// case-insensitive substring match on name; sortBy is "name" (default,
// ascending) or "date" (created_at descending).
func ListChapters(db *gorm.DB, search, sortBy string) ([]models.Chapter, error) {
	query := db.Model(&models.Chapter{})

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if sortBy == "date" {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("name")
	}

	var chapters []models.Chapter
	if err := query.Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

// GetChapter returns a chapter with its sections (id ascending) and comments
// (newest first). Any authenticated principal may read it, not just the owner.
func GetChapter(db *gorm.DB, p *PrincipalContext, chapterID uint) (*ChapterDetail, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}

	var chapter models.Chapter
	if err := db.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &ChapterDetail{Chapter: chapter}
	if err := db.Where("chapter_id = ?", chapterID).Order("id").Find(&detail.Sections).Error; err != nil {
		return nil, err
	}

	comments, err := ListChapterComments(db, chapterID)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments

	return detail, nil
}

// CreateChapter creates a chapter owned by the acting admin. The name must be
// unique within that admin's chapter set.
func CreateChapter(db *gorm.DB, p *PrincipalContext, name string) (uint, error) {
	if err := requireAdmin(p); err != nil {
		return 0, err
	}
	if name = strings.TrimSpace(name); name == "" {
		return 0, fmt.Errorf("%w: chapter name required", ErrValidation)
	}

	var id uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Chapter{}).
			Where("admin_id = ? AND name = ?", p.ID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		chapter := models.Chapter{Name: name, AdminID: p.ID}
		if err := tx.Create(&chapter).Error; err != nil {
			return translateDuplicate(err, ErrDuplicateName)
		}
		id = chapter.ID
		return nil
	})
	return id, err
}

// RenameChapter changes a chapter's name. Ownership is verified first; the
// owning admin never changes.
func RenameChapter(db *gorm.DB, p *PrincipalContext, chapterID uint, newName string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if newName = strings.TrimSpace(newName); newName == "" {
		return fmt.Errorf("%w: chapter name required", ErrValidation)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		chapter, err := chapterOwnedBy(tx, p.ID, chapterID)
		if err != nil {
			return err
		}
		if chapter.Name == newName {
			return nil
		}

		var count int64
		if err := tx.Model(&models.Chapter{}).
			Where("admin_id = ? AND name = ? AND id <> ?", p.ID, newName, chapterID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		// Update the name column only, admin_id is immutable after creation
		if err := tx.Model(&models.Chapter{}).
			Where("id = ?", chapterID).
			Update("name", newName).Error; err != nil {
			return translateDuplicate(err, ErrDuplicateName)
		}
		return nil
	})
}

// DeleteChapter removes a chapter with an explicit cascade: section comments,
// sections, chapter comments, then the chapter itself, all in one transaction.
func DeleteChapter(db *gorm.DB, p *PrincipalContext, chapterID uint) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := chapterOwnedBy(tx, p.ID, chapterID); err != nil {
			return err
		}

		sectionIDs := tx.Model(&models.Section{}).Select("id").Where("chapter_id = ?", chapterID)
		if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&models.SectionComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", chapterID).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", chapterID).Delete(&models.ChapterComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chapter{}, chapterID).Error
	})
}

// AdminChapters lists the acting admin's own chapters for the edit forms
func AdminChapters(db *gorm.DB, p *PrincipalContext) ([]models.Chapter, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	query := db.Where("admin_id = ?", p.ID).Order("name")
	if db.Dialector.Name() == "mysql" {
		// The composite (admin_id, name) index covers this listing
		query = query.Clauses(hints.UseIndex("idx_admin_chapter_name"))
	}

	var chapters []models.Chapter
	if err := query.Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

// GetDashboardStats counts the admin's chapters, their sections, and the
// chapter comments left on them.
func GetDashboardStats(db *gorm.DB, p *PrincipalContext) (*DashboardStats, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	if err := db.Model(&models.Chapter{}).
		Where("admin_id = ?", p.ID).
		Count(&stats.Chapters).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Section{}).
		Joins("JOIN chapters ON chapters.id = sections.chapter_id").
		Where("chapters.admin_id = ?", p.ID).
		Count(&stats.Sections).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ChapterComment{}).
		Joins("JOIN chapters ON chapters.id = chapter_comments.chapter_id").
		Where("chapters.admin_id = ?", p.ID).
		Count(&stats.Comments).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
