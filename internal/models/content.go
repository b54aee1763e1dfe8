package models

import (
	"time"
)

// Chapter is owned by exactly one admin. Chapter names are unique per admin,
// enforced by the composite index so concurrent duplicate creates fail in the store.
type Chapter struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:200;not null;index:idx_admin_chapter_name,unique"`
	AdminID   uint   `gorm:"not null;index:idx_admin_chapter_name,unique"`
	CreatedAt time.Time
	Sections  []Section        `gorm:"foreignKey:ChapterID"`
	Comments  []ChapterComment `gorm:"foreignKey:ChapterID"`
}

// Section is a rich-text lesson inside a chapter. Content holds the editor
// output as text and may be null. Section names are unique per chapter.
type Section struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"size:200;not null;index:idx_chapter_section_name,unique"`
	Content   *string `gorm:"type:text"`
	ChapterID uint    `gorm:"not null;index:idx_chapter_section_name,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Comments  []SectionComment `gorm:"foreignKey:SectionID"`
}

// TableName overrides the table name for Chapter
func (Chapter) TableName() string {
	return "chapters"
}

// TableName overrides the table name for Section
func (Section) TableName() string {
	return "sections"
}
