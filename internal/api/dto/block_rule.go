package dto

import (
	"time"

	"corkboard/internal/ipmatch"
)

type CreateBlockRuleReq struct {
	Pattern   string     `json:"pattern"`
	Reason    string     `json:"reason"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (r CreateBlockRuleReq) Validate() error {
	var fields []FieldError

	if r.Pattern == "" {
		fields = append(fields, FieldError{Field: "pattern", Message: "is required"})
	} else if !ipmatch.ValidPattern(r.Pattern) {
		fields = append(fields, FieldError{Field: "pattern", Message: "must be an IPv4 address or CIDR range"})
	}
	if len(r.Reason) > maxReasonLength {
		fields = append(fields, FieldError{Field: "reason", Message: "must be at most 200 characters"})
	}

	return validationError(fields)
}

// UpdateBlockRuleReq is a partial update; nil fields stay untouched.
type UpdateBlockRuleReq struct {
	Pattern   *string    `json:"pattern"`
	Reason    *string    `json:"reason"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Active    *bool      `json:"active"`
}

func (r UpdateBlockRuleReq) Validate() error {
	var fields []FieldError

	if r.Pattern != nil && !ipmatch.ValidPattern(*r.Pattern) {
		fields = append(fields, FieldError{Field: "pattern", Message: "must be an IPv4 address or CIDR range"})
	}
	if r.Reason != nil && len(*r.Reason) > maxReasonLength {
		fields = append(fields, FieldError{Field: "reason", Message: "must be at most 200 characters"})
	}

	return validationError(fields)
}

type BlockRuleView struct {
	ID        string     `json:"id"`
	Pattern   string     `json:"pattern"`
	Reason    string     `json:"reason"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Active    bool       `json:"active"`
}

type BlockRulePage struct {
	Rules []BlockRuleView `json:"rules"`
	PageInfo
}

// BlockRuleFilter narrows the admin listing. Active nil means both states.
type BlockRuleFilter struct {
	Pattern string
	Active  *bool
	Page    PageRequest
}
