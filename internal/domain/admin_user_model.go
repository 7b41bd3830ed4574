package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser can moderate comments and manage block rules. Password holds a
// bcrypt hash.
type AdminUser struct {
	ID       string `gorm:"primaryKey;size:36"`
	Email    string `gorm:"size:255;uniqueIndex;not null"`
	Password string `gorm:"size:80;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
