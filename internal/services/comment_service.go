package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/scriptscope/internal/models"
	"gorm.io/gorm"
)

// CommentView is the comment listing shape: the comment with its author's
// display name, newest first.
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AddChapterComment attaches a comment to a chapter. Any authenticated user
// may comment on any chapter; there is no ownership check beyond that.
func AddChapterComment(db *gorm.DB, p *PrincipalContext, chapterID uint, content string) (uint, error) {
	if err := requireUser(p); err != nil {
		return 0, err
	}
	if content = strings.TrimSpace(content); content == "" || chapterID == 0 {
		return 0, fmt.Errorf("%w: comment content and chapter_id required", ErrValidation)
	}

	var id uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var chapter models.Chapter
		if err := tx.First(&chapter, chapterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		comment := models.ChapterComment{Content: content, UserID: p.ID, ChapterID: chapterID}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		id = comment.ID
		return nil
	})
	return id, err
}

// AddSectionComment attaches a comment to a section
func AddSectionComment(db *gorm.DB, p *PrincipalContext, sectionID uint, content string) (uint, error) {
	if err := requireUser(p); err != nil {
		return 0, err
	}
	if content = strings.TrimSpace(content); content == "" || sectionID == 0 {
		return 0, fmt.Errorf("%w: comment content and section_id required", ErrValidation)
	}

	var id uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var section models.Section
		if err := tx.First(&section, sectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		comment := models.SectionComment{Content: content, UserID: p.ID, SectionID: sectionID}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		id = comment.ID
		return nil
	})
	return id, err
}

// ListChapterComments returns a chapter's comments newest first. The full set
// is returned; the original contract has no pagination bound.
func ListChapterComments(db *gorm.DB, chapterID uint) ([]CommentView, error) {
	var comments []models.ChapterComment
	if err := db.Preload("User").
		Where("chapter_id = ?", chapterID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, CommentView{
			ID:        comments[i].ID,
			Content:   comments[i].Content,
			UserName:  comments[i].User.FullName(),
			CreatedAt: comments[i].CreatedAt,
		})
	}
	return views, nil
}

// ListSectionComments returns a section's comments newest first
func ListSectionComments(db *gorm.DB, sectionID uint) ([]CommentView, error) {
	var comments []models.SectionComment
	if err := db.Preload("User").
		Where("section_id = ?", sectionID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, CommentView{
			ID:        comments[i].ID,
			Content:   comments[i].Content,
			UserName:  comments[i].User.FullName(),
			CreatedAt: comments[i].CreatedAt,
		})
	}
	return views, nil
}
