package configs

import (
	"log"
	"strings"

	"github.com/fabiomatricardi/cm-log-system/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the admin account on first start. With reset set, an
// existing account gets the new password.
func SeedAdmin(db *gorm.DB, username, password string, reset bool) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entity.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if !reset {
			log.Println("ℹ️ admin already exists:", username)
			return nil
		}
		log.Println("✅ admin password reset:", username)
		return db.Model(&entity.Admin{}).Where("username = ?", username).Update("password", string(hash)).Error
	}

	admin := entity.Admin{
		Username: username,
		Password: string(hash),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("✅ admin seeded:", username)
	return nil
}
