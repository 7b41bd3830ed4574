package database

import (
	"context"
	"errors"
	"time"

	"corkboard/internal/api/dto"
	"corkboard/internal/domain"
	"corkboard/internal/ipmatch"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CreateBlockRule validates and persists a new block rule. The partial
// unique index on active patterns turns a concurrent duplicate insert into
// ErrActiveRuleExists instead of a second active rule.
func CreateBlockRule(ctx context.Context, rule *domain.BlockRule) error {
	if DB == nil {
		return errors.New("database not initialised")
	}

	if !ipmatch.ValidPattern(rule.Pattern) {
		return ErrInvalidPattern
	}

	err := DB.WithContext(ctx).Create(rule).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrActiveRuleExists
	}
	return err
}

// ListBlockRules returns a page of rules ordered newest-first, optionally
// narrowed by pattern substring and active state.
func ListBlockRules(ctx context.Context, filter dto.BlockRuleFilter) ([]domain.BlockRule, int64, error) {
	if DB == nil {
		return nil, 0, errors.New("database not initialised")
	}

	buildQuery := func() *gorm.DB {
		query := DB.WithContext(ctx).Model(&domain.BlockRule{})
		if filter.Pattern != "" {
			query = query.Where("pattern LIKE ?", "%"+filter.Pattern+"%")
		}
		if filter.Active != nil {
			query = query.Where("active = ?", *filter.Active)
		}
		return query
	}

	var (
		rules []domain.BlockRule
		total int64
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return buildQuery().WithContext(groupCtx).
			Order("created_at DESC").
			Offset(filter.Page.Offset()).
			Limit(filter.Page.PageSize).
			Find(&rules).Error
	})
	group.Go(func() error {
		return buildQuery().WithContext(groupCtx).Count(&total).Error
	})
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}

	return rules, total, nil
}

func GetBlockRule(ctx context.Context, id string) (*domain.BlockRule, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var rule domain.BlockRule
	err := DB.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateBlockRule applies a partial update, re-validating the pattern when
// it changes.
func UpdateBlockRule(ctx context.Context, id string, req dto.UpdateBlockRuleReq) (*domain.BlockRule, error) {
	rule, err := GetBlockRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Pattern != nil {
		if !ipmatch.ValidPattern(*req.Pattern) {
			return nil, ErrInvalidPattern
		}
		rule.Pattern = *req.Pattern
	}
	if req.Reason != nil {
		rule.Reason = *req.Reason
	}
	if req.ExpiresAt != nil {
		rule.ExpiresAt = req.ExpiresAt
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	err = DB.WithContext(ctx).Save(rule).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrActiveRuleExists
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func DeleteBlockRule(ctx context.Context, id string) error {
	if DB == nil {
		return errors.New("database not initialised")
	}

	result := DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.BlockRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// FindActiveRuleByPattern returns the active rule matching the exact
// pattern, or nil when none exists. Deactivated rules do not count.
func FindActiveRuleByPattern(ctx context.Context, pattern string) (*domain.BlockRule, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var rule domain.BlockRule
	err := DB.WithContext(ctx).
		Where("pattern = ? AND active = ?", pattern, true).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// IsBlocked reports whether the address is covered by any active,
// non-expired rule. Exact-match rules are checked first as a cheap path;
// CIDR rules are then evaluated in memory. Expiry is lazy: expired rules
// simply stop matching, they are never swept.
func IsBlocked(ctx context.Context, address string) (bool, error) {
	if DB == nil {
		return false, errors.New("database not initialised")
	}

	now := time.Now().UTC()

	var exactCount int64
	err := DB.WithContext(ctx).
		Model(&domain.BlockRule{}).
		Where("pattern = ? AND active = ?", address, true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Count(&exactCount).Error
	if err != nil {
		return false, err
	}
	if exactCount > 0 {
		return true, nil
	}

	var cidrRules []domain.BlockRule
	err = DB.WithContext(ctx).
		Where("pattern LIKE ? AND active = ?", "%/%", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Find(&cidrRules).Error
	if err != nil {
		return false, err
	}

	for _, rule := range cidrRules {
		if ipmatch.Matches(address, rule.Pattern) {
			return true, nil
		}
	}
	return false, nil
}
