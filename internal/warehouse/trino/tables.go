package trino

import (
	"context"
	"fmt"
)

// Provision (re)creates the external tables for one processing date. The
// tables point at that date's raw directories, so they are dropped and
// recreated on every run.
func (s *Source) Provision(ctx context.Context, date string) error {
	stmts := []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", s.cfg.Schema),
		"DROP TABLE IF EXISTS orders_data",
		fmt.Sprintf(`CREATE TABLE orders_data (
			order_id VARCHAR,
			pos_id VARCHAR,
			sku VARCHAR,
			quantity INTEGER,
			order_date VARCHAR,
			order_time VARCHAR,
			customer_id VARCHAR
		) WITH (
			format = 'JSON',
			external_location = '%s%s/%s'
		)`, s.cfg.HDFSDataURL, s.cfg.RawOrdersPath, date),
		"DROP TABLE IF EXISTS stock_data",
		fmt.Sprintf(`CREATE TABLE stock_data (
			warehouse_id VARCHAR,
			sku VARCHAR,
			available_stock VARCHAR,
			reserved_stock VARCHAR,
			safety_stock VARCHAR,
			snapshot_date VARCHAR,
			snapshot_time VARCHAR
		) WITH (
			format = 'CSV',
			external_location = '%s%s/%s',
			skip_header_line_count = 1
		)`, s.cfg.HDFSDataURL, s.cfg.RawStockPath, date),
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("provision tables: %w", err)
		}
	}
	return nil
}
