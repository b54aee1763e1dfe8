package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/scriptscope/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegistrationInput carries the registration form fields
type RegistrationInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register creates a new principal of the given kind. User and Admin emails
// live in separate namespaces; the same address may register as both.
func Register(db *gorm.DB, kind models.PrincipalKind, in RegistrationInput) (*PrincipalContext, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: all registration fields are required", ErrValidation)
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	principal := &PrincipalContext{Kind: kind, Name: in.FirstName + " " + in.LastName}

	err = db.Transaction(func(tx *gorm.DB) error {
		switch kind {
		case models.KindAdmin:
			var count int64
			if err := tx.Model(&models.Admin{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateEmail
			}
			admin := models.Admin{
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Email:        in.Email,
				PasswordHash: string(hash),
			}
			if err := tx.Create(&admin).Error; err != nil {
				return translateDuplicate(err, ErrDuplicateEmail)
			}
			principal.ID = admin.ID

		case models.KindUser:
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateEmail
			}
			user := models.User{
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				Email:        in.Email,
				PasswordHash: string(hash),
			}
			if err := tx.Create(&user).Error; err != nil {
				return translateDuplicate(err, ErrDuplicateEmail)
			}
			principal.ID = user.ID

		default:
			return fmt.Errorf("%w: unknown principal kind %q", ErrValidation, kind)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return principal, nil
}

// Authenticate verifies credentials against the table for the given kind.
// Unknown email and wrong password are indistinguishable to the caller.
func Authenticate(db *gorm.DB, kind models.PrincipalKind, email, password string) (*PrincipalContext, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var id uint
	var name, hash string

	switch kind {
	case models.KindAdmin:
		var admin models.Admin
		if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		id, name, hash = admin.ID, admin.FullName(), admin.PasswordHash

	case models.KindUser:
		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		id, name, hash = user.ID, user.FullName(), user.PasswordHash

	default:
		return nil, fmt.Errorf("%w: unknown principal kind %q", ErrValidation, kind)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &PrincipalContext{ID: id, Kind: kind, Name: name}, nil
}

// translateDuplicate maps a storage unique-constraint violation to the
// matching domain error. Concurrent writers that pass the in-transaction
// pre-check are caught here by the index.
func translateDuplicate(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainErr
	}
	return err
}
