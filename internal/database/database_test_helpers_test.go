package database

import (
	"fmt"
	"testing"

	"corkboard/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		t.Fatalf("set busy timeout: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.Brand{},
		&domain.Comment{},
		&domain.BlockRule{},
		&domain.AdminUser{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	DB = db

	t.Cleanup(func() {
		DB = nil
	})

	return db
}

func mustCreateBrand(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	if err := db.Create(&domain.Brand{BrandNm: name}).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}
}
