package services_test

import (
	"errors"
	"testing"

	"github.com/localnerve/scriptscope/internal/models"
	"github.com/localnerve/scriptscope/internal/services"
)

// TestRegisterAndAuthenticate tests the full credential round trip
func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)

	p, err := services.Register(db, models.KindUser, services.RegistrationInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if p.ID == 0 {
		t.Error("Expected a nonzero principal id")
	}
	if p.Kind != models.KindUser {
		t.Errorf("Expected kind user, got %q", p.Kind)
	}
	if p.Name != "Ada Lovelace" {
		t.Errorf("Expected display name 'Ada Lovelace', got %q", p.Name)
	}

	// Stored hash must not be the plaintext password
	var user models.User
	if err := db.First(&user, p.ID).Error; err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	if user.PasswordHash == "secret123" {
		t.Error("Password stored in plaintext")
	}

	auth, err := services.Authenticate(db, models.KindUser, "ada@example.com", "secret123")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if auth.ID != p.ID {
		t.Errorf("Expected principal id %d, got %d", p.ID, auth.ID)
	}

	if _, err := services.Authenticate(db, models.KindUser, "ada@example.com", "wrong"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := services.Authenticate(db, models.KindUser, "nobody@example.com", "secret123"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

// TestRegisterNormalizesEmail tests that email matching ignores case and whitespace
func TestRegisterNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Register(db, models.KindUser, services.RegistrationInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "  Ada@Example.COM ",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if _, err := services.Authenticate(db, models.KindUser, "ada@example.com", "secret123"); err != nil {
		t.Errorf("Expected normalized email to authenticate, got %v", err)
	}
}

// TestRegisterPasswordMismatch tests the confirm password check
func TestRegisterPasswordMismatch(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Register(db, models.KindUser, services.RegistrationInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "secret123",
		ConfirmPassword: "different",
	})
	if !errors.Is(err, services.ErrPasswordMismatch) {
		t.Errorf("Expected ErrPasswordMismatch, got %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no users after failed registration, got %d", count)
	}
}

// TestRegisterMissingFields tests required-field validation
func TestRegisterMissingFields(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Register(db, models.KindAdmin, services.RegistrationInput{
		FirstName: "Ada",
		Email:     "ada@example.com",
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

// TestRegisterDuplicateEmailPerKind tests that user and admin emails are
// separate namespaces
func TestRegisterDuplicateEmailPerKind(t *testing.T) {
	db := setupTestDB(t)

	in := services.RegistrationInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}

	if _, err := services.Register(db, models.KindUser, in); err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}

	if _, err := services.Register(db, models.KindUser, in); !errors.Is(err, services.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail for second user registration, got %v", err)
	}

	// Same address is free in the admin namespace
	if _, err := services.Register(db, models.KindAdmin, in); err != nil {
		t.Errorf("Expected admin registration with the same email to succeed, got %v", err)
	}
}
