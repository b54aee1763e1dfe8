package models

import (
	"time"
)

// ChapterComment is authored by one user on one chapter. Comments are
// immutable once created; they disappear only when their parent is deleted.
type ChapterComment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"type:text;not null"`
	UserID    uint   `gorm:"not null;index"`
	ChapterID uint   `gorm:"not null;index"`
	CreatedAt time.Time
	User      User `gorm:"foreignKey:UserID"`
}

// SectionComment is authored by one user on one section.
type SectionComment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"type:text;not null"`
	UserID    uint   `gorm:"not null;index"`
	SectionID uint   `gorm:"not null;index"`
	CreatedAt time.Time
	User      User `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for ChapterComment
func (ChapterComment) TableName() string {
	return "chapter_comments"
}

// TableName overrides the table name for SectionComment
func (SectionComment) TableName() string {
	return "section_comments"
}
