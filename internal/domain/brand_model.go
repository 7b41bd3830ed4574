package domain

import "time"

// Brand is the minimal slice of the catalog the comment board needs: the
// board only ever asks whether a brand name exists. The full catalog data
// is owned by the catalog service, which shares this table.
type Brand struct {
	BrandNm   string    `gorm:"primaryKey;size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
