package database

import (
	"context"
	"errors"

	"corkboard/internal/domain"
)

// BrandExists reports whether the named brand is present in the catalog.
func BrandExists(ctx context.Context, brandNm string) (bool, error) {
	if DB == nil {
		return false, errors.New("database not initialised")
	}

	var count int64
	err := DB.WithContext(ctx).
		Model(&domain.Brand{}).
		Where("brand_nm = ?", brandNm).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
