package database

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/models"
	"github.com/cuecafe/pos/utils"
)

// Seed creates the first admin account when the users table is empty, so a
// fresh deployment can log in. Credentials come from ADMIN_EMAIL /
// ADMIN_PASSWORD, with development defaults.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@cuecafe.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return errors.New("failed to seed admin user: " + err.Error())
	}

	utils.InfoLogger.Printf("Seeded admin user %s", email)
	return nil
}
