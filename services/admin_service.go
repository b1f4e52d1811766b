// services/admin_service.go - Administrator accounts
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wodboard/database"
	"wodboard/log"
	"wodboard/models"
)

const minPasswordLength = 8

type AdminService struct {
	store database.Store
}

func NewAdminService(store database.Store) *AdminService {
	return &AdminService{store: store}
}

// Create registers an administrator with a bcrypt-hashed password
func (s *AdminService) Create(username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("username is required")
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.store.GetAdminByUsername(username); err == nil {
		return nil, invalid("admin %q already exists", username)
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{Username: username, PasswordHash: string(hash)}
	if err := s.store.CreateAdmin(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	log.WithComponent("auth").Info().Str("username", username).Msg("Admin created")
	return admin, nil
}

// Authenticate checks the credentials and records the login time
func (s *AdminService) Authenticate(username, password string) (*models.Admin, error) {
	admin, err := s.store.GetAdminByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.store.TouchAdminLogin(admin.ID, now); err != nil {
		log.WithComponent("auth").Warn().Err(err).Str("username", admin.Username).Msg("Failed to record login")
	} else {
		admin.LastLogin = &now
	}
	return admin, nil
}
