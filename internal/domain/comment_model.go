package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a visitor comment attached to a brand. Threading is exactly one
// level deep: a root comment (ParentID nil) may carry replies, a reply may
// not. Deletion is a soft flag and never reverts.
type Comment struct {
	ID      string `gorm:"primaryKey;size:36"`
	BrandNm string `gorm:"size:255;not null;index"`

	// ParentID is nil for root comments and points at a root for replies.
	ParentID *string `gorm:"size:36;index"`

	// Nickname is optional; sanitized output substitutes an anonymous label.
	Nickname string `gorm:"size:40;not null;default:''"`

	// PasswordHash authorizes self-service deletion. Only the bcrypt hash
	// is ever stored.
	PasswordHash string `gorm:"size:80;not null"`

	Content string `gorm:"size:1100;not null"`

	// IPAddress and UserAgent are captured at creation and only surfaced
	// through the admin listing.
	IPAddress string `gorm:"size:45;not null"`
	UserAgent string `gorm:"size:512;not null;default:''"`

	Deleted bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Replies []Comment `gorm:"foreignKey:ParentID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
