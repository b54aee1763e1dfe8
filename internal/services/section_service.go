// section_service.go
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
)

// SectionDetail is the read model for the section page, including the
// previous/next neighbors in id order for navigation.
type SectionDetail struct {
	Chapter  models.Chapter
	Section  models.Section
	All      []models.Section
	Prev     *models.Section
	Next     *models.Section
	Comments []CommentView
}

// CreateSection adds a section to a chapter owned by the acting admin. The
// name must be unique within the chapter; content may be empty.
func CreateSection(db *gorm.DB, p *PrincipalContext, chapterID uint, name string, content *string) (uint, error) {
	if err := requireAdmin(p); err != nil {
		return 0, err
	}
	if name = strings.TrimSpace(name); name == "" {
		return 0, fmt.Errorf("%w: section name required", ErrValidation)
	}

	var id uint
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := chapterOwnedBy(tx, p.ID, chapterID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Section{}).
			Where("chapter_id = ? AND name = ?", chapterID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		section := models.Section{Name: name, Content: content, ChapterID: chapterID}
		if err := tx.Create(&section).Error; err != nil {
			return translateDuplicate(err, ErrDuplicateName)
		}
		id = section.ID
		return nil
	})
	return id, err
}

// UpdateSection replaces a section's name and content. updated_at refreshes
// only when the update commits; a failed check leaves the row untouched.
func UpdateSection(db *gorm.DB, p *PrincipalContext, sectionID uint, name string, content *string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if name = strings.TrimSpace(name); name == "" {
		return fmt.Errorf("%w: section name required", ErrValidation)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		section, err := sectionOwnedBy(tx, p.ID, sectionID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Section{}).
			Where("chapter_id = ? AND name = ? AND id <> ?", section.ChapterID, name, sectionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		// Updates bumps updated_at through GORM's update-time tracking
		if err := tx.Model(section).
			Updates(map[string]interface{}{"name": name, "content": content}).Error; err != nil {
			return translateDuplicate(err, ErrDuplicateName)
		}
		return nil
	})
}

// DeleteSection removes a section and its comments in one transaction
func DeleteSection(db *gorm.DB, p *PrincipalContext, sectionID uint) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := sectionOwnedBy(tx, p.ID, sectionID); err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", sectionID).Delete(&models.SectionComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Section{}, sectionID).Error
	})
}

// GetSection returns a section with navigation neighbors and comments. The
// section must belong to the given chapter. Any authenticated principal may
// read it.
func GetSection(db *gorm.DB, p *PrincipalContext, chapterID, sectionID uint) (*SectionDetail, error) {
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

	var section models.Section
	if err := db.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if section.ChapterID != chapterID {
		return nil, ErrNotFound
	}

	detail := &SectionDetail{Chapter: chapter, Section: section}
	if err := db.Where("chapter_id = ?", chapterID).Order("id").Find(&detail.All).Error; err != nil {
		return nil, err
	}

	// First section has no previous, last has no next
	for i := range detail.All {
		if detail.All[i].ID == sectionID {
			if i > 0 {
				detail.Prev = &detail.All[i-1]
			}
			if i < len(detail.All)-1 {
				detail.Next = &detail.All[i+1]
			}
			break
		}
	}

	comments, err := ListSectionComments(db, sectionID)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments

	return detail, nil
}

// AdminSections lists a chapter's sections for the owning admin's edit forms
func AdminSections(db *gorm.DB, p *PrincipalContext, chapterID uint) ([]models.Section, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if _, err := chapterOwnedBy(db, p.ID, chapterID); err != nil {
		return nil, err
	}

	var sections []models.Section
	if err := db.Where("chapter_id = ?", chapterID).Order("id").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}
