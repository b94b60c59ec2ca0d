package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	LoadCatalog(ctx context.Context, db *gorm.DB) (map[string]CatalogEntry, error)
	LoadRules(ctx context.Context, db *gorm.DB) (map[RuleKey]ReplenishmentRule, error)
}
