package services

import (
	"errors"

	"github.com/localnerve/scriptscope/internal/models"
	"gorm.io/gorm"
)

// PrincipalContext identifies the authenticated actor for one operation.
// It is resolved once from session state by the middleware layer and passed
// explicitly; nothing below the handlers reads ambient request state.
type PrincipalContext struct {
	ID   uint
	Kind models.PrincipalKind
	Name string
}

// requireAdmin gates operations that mutate chapters and sections
func requireAdmin(p *PrincipalContext) error {
	if p == nil || p.ID == 0 || p.Kind != models.KindAdmin {
		return ErrUnauthenticated
	}
	return nil
}

// requireUser gates comment creation
func requireUser(p *PrincipalContext) error {
	if p == nil || p.ID == 0 || p.Kind != models.KindUser {
		return ErrUnauthenticated
	}
	return nil
}

// requirePrincipal gates reads that need any logged-in account
func requirePrincipal(p *PrincipalContext) error {
	if p == nil || p.ID == 0 {
		return ErrUnauthenticated
	}
	return nil
}

// chapterOwnedBy loads a chapter and verifies the acting admin owns it.
// Existence is reported before ownership, so a foreign admin sees
// ErrPermissionDenied for a chapter that exists and ErrNotFound otherwise.
func chapterOwnedBy(tx *gorm.DB, adminID, chapterID uint) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := tx.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if chapter.AdminID != adminID {
		return nil, ErrPermissionDenied
	}
	return &chapter, nil
}

// sectionOwnedBy resolves a section's ownership chain through its parent
// chapter. Sections carry no ACL of their own; a missing parent breaks the
// chain and reads as a permission failure.
func sectionOwnedBy(tx *gorm.DB, adminID, sectionID uint) (*models.Section, error) {
	var section models.Section
	if err := tx.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := chapterOwnedBy(tx, adminID, section.ChapterID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	return &section, nil
}
