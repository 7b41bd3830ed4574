package database

import (
	"errors"
	"strings"

	"corkboard/internal/domain"
	"corkboard/internal/support"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// GetAdminByEmail loads an administrator account for login.
func GetAdminByEmail(email string) (*domain.AdminUser, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var admin domain.AdminUser
	if err := DB.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// ensureAdminUser seeds the first administrator from ADMIN_EMAIL and
// ADMIN_PASSWORD when the table is empty. Without it there is no way to
// reach the moderation endpoints on a fresh install.
func ensureAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := support.GetEnv("ADMIN_EMAIL", "")
	password := support.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		log.Warn("No admin account configured; set ADMIN_EMAIL and ADMIN_PASSWORD to seed one")
		return nil
	}

	hashed, err := support.HashPassword(password)
	if err != nil {
		return err
	}

	admin := domain.AdminUser{Email: email, Password: hashed}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("Seeded admin account", "email", email)
	return nil
}

// ensureSeedBrands inserts brand names listed in SEED_BRANDS (comma
// separated) when the catalog table is empty. The catalog service owns this
// table in production; the seed only serves standalone deployments.
func ensureSeedBrands(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Brand{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw := support.GetEnv("SEED_BRANDS", "")
	if raw == "" {
		return nil
	}

	var brands []domain.Brand
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		brands = append(brands, domain.Brand{BrandNm: name})
	}
	if len(brands) == 0 {
		return nil
	}

	if err := db.Create(&brands).Error; err != nil {
		return err
	}

	log.Info("Seeded brands", "count", len(brands))
	return nil
}
