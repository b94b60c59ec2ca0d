package trino

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smallbiznis/procura/internal/warehouse/domain"
	_ "github.com/trinodb/trino-go-client/trino"
	"go.uber.org/zap"
)

// Source runs the aggregate queries against Trino external tables over
// the raw HDFS order and stock files.
type Source struct {
	db  *sql.DB
	cfg Config
	log *zap.Logger
}

type Config struct {
	DSN string
	// Schema the external tables live in.
	Schema string
	// HDFSDataURL is the namenode RPC endpoint, e.g. hdfs://namenode:9000.
	HDFSDataURL   string
	RawOrdersPath string
	RawStockPath  string
}

func New(db *sql.DB, cfg Config, log *zap.Logger) *Source {
	return &Source{
		db:  db,
		cfg: cfg,
		log: log.Named("trino"),
	}
}

// Open dials Trino and verifies the connection.
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("trino", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open trino: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping trino: %w", err)
	}
	return db, nil
}

func (s *Source) TotalsBySKU(ctx context.Context, date string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, SUM(quantity) AS total_quantity
		FROM orders_data
		WHERE order_date = ?
		GROUP BY sku
		ORDER BY total_quantity DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var sku string
		var quantity int
		if err := rows.Scan(&sku, &quantity); err != nil {
			return nil, fmt.Errorf("scan orders row: %w", err)
		}
		totals[sku] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return totals, nil
}

func (s *Source) LatestBySKU(ctx context.Context, date string) (map[string]domain.StockLevels, error) {
	var latest sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(snapshot_date) AS latest_date
		FROM stock_data
		WHERE snapshot_date <= ?`, date).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if !latest.Valid || latest.String == "" {
		return map[string]domain.StockLevels{}, nil
	}

	s.log.Info("using stock snapshot", zap.String("snapshot_date", latest.String))

	// Stock columns arrive as VARCHAR in the raw CSVs; the cast stays in
	// SQL so the source contract yields typed integers.
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku,
		       SUM(CAST(available_stock AS INTEGER)) AS total_available,
		       SUM(CAST(reserved_stock AS INTEGER)) AS total_reserved,
		       MAX(CAST(safety_stock AS INTEGER)) AS max_safety_stock
		FROM stock_data
		WHERE snapshot_date = ?
		GROUP BY sku`, latest.String)
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	defer rows.Close()

	stock := make(map[string]domain.StockLevels)
	for rows.Next() {
		var sku string
		var levels domain.StockLevels
		if err := rows.Scan(&sku, &levels.Available, &levels.Reserved, &levels.SafetyStock); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		stock[sku] = levels
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stock: %w", err)
	}
	return stock, nil
}
