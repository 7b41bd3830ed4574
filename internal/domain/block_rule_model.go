package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockRule is a single blocklist entry. Pattern holds either a literal
// IPv4 address or a CIDR range (address/prefix).
//
// The partial unique index keeps at most one active rule per pattern, which
// is what makes concurrent "block this IP" promotions safe: the loser hits
// the constraint instead of inserting a duplicate.
type BlockRule struct {
	ID      string `gorm:"primaryKey;size:36"`
	Pattern string `gorm:"size:45;not null;uniqueIndex:idx_block_rules_active_pattern,where:active"`

	// Reason is free text supplied by the blocking admin.
	Reason    string `gorm:"size:512;not null;default:''"`
	CreatedBy string `gorm:"size:36;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`

	// ExpiresAt nil means the rule never expires. Expiry is evaluated
	// lazily at match time; there is no sweep job.
	ExpiresAt *time.Time

	// Active can be switched off without deleting the rule. Callers set
	// it explicitly on every insert; gorm drops zero values for columns
	// that carry a default.
	Active bool `gorm:"not null"`
}

func (r *BlockRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
