package models

import (
	"time"
)

// PrincipalKind discriminates the two disjoint account namespaces.
type PrincipalKind string

const (
	KindUser  PrincipalKind = "user"
	KindAdmin PrincipalKind = "admin"
)

// User represents a registered reader who can browse content and comment
type User struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	FirstName       string `gorm:"size:50;not null"`
	LastName        string `gorm:"size:50;not null"`
	Email           string `gorm:"size:120;not null;uniqueIndex"`
	PasswordHash    string `gorm:"size:256;not null"`
	CreatedAt       time.Time
	ChapterComments []ChapterComment `gorm:"foreignKey:UserID"`
	SectionComments []SectionComment `gorm:"foreignKey:UserID"`
}

// Admin represents a content author; admins own chapters
type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	FirstName    string `gorm:"size:50;not null"`
	LastName     string `gorm:"size:50;not null"`
	Email        string `gorm:"size:120;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:256;not null"`
	CreatedAt    time.Time
	Chapters     []Chapter `gorm:"foreignKey:AdminID"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Admin
func (Admin) TableName() string {
	return "admins"
}

// FullName returns the display name used in comment listings
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// FullName returns the admin display name
func (a *Admin) FullName() string {
	return a.FirstName + " " + a.LastName
}
