package config

import (
	"errors"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"p9e.in/brokerdesk/models"
)

// SeedAdminUser creates the bootstrap admin account when no admin exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; skipped when unset.
func SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		slog.Info("ADMIN_EMAIL/ADMIN_PASSWORD unset, skipping admin seed")
		return nil
	}

	var existing models.User
	err := DB.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	slog.Info("seeded admin account", "email", email)
	return nil
}
