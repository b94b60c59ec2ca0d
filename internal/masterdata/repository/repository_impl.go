package repository

import (
	"context"

	"github.com/smallbiznis/procura/internal/masterdata/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) LoadCatalog(ctx context.Context, db *gorm.DB) (map[string]domain.CatalogEntry, error) {
	var rows []domain.CatalogEntry
	err := db.WithContext(ctx).Raw(
		`SELECT p.sku, p.product_name, p.supplier_id, p.pack_size, p.case_size,
		        s.supplier_name, s.lead_time_days
		 FROM products p
		 JOIN suppliers s ON p.supplier_id = s.supplier_id
		 WHERE p.active = TRUE AND s.active = TRUE`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]domain.CatalogEntry, len(rows))
	for _, row := range rows {
		catalog[row.SKU] = row
	}
	return catalog, nil
}

func (r *repo) LoadRules(ctx context.Context, db *gorm.DB) (map[domain.RuleKey]domain.ReplenishmentRule, error) {
	var rows []domain.ReplenishmentRule
	err := db.WithContext(ctx).Raw(
		`SELECT sku, warehouse_id, safety_stock, minimum_order_quantity, active
		 FROM replenishment_rules
		 WHERE active = TRUE`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rules := make(map[domain.RuleKey]domain.ReplenishmentRule, len(rows))
	for _, row := range rows {
		rules[domain.RuleKey{SKU: row.SKU, WarehouseID: row.WarehouseID}] = row
	}
	return rules, nil
}
