package domain

import "context"

// StockLevels are the per-SKU totals from the latest stock snapshot.
// Available and reserved are summed across warehouses; safety stock is
// the max, not the sum, so one conservative warehouse sets the buffer.
// Values are already typed integers: casting the source's text columns
// happens inside the aggregate query, never in core code.
type StockLevels struct {
	Available   int
	Reserved    int
	SafetyStock int
}

// OrderSource yields cumulative order quantity per SKU for a processing
// date. An empty map is a valid result and signals no_data to the caller.
type OrderSource interface {
	TotalsBySKU(ctx context.Context, date string) (map[string]int, error)
}

// StockSource yields stock levels per SKU from the most recent snapshot
// dated on or before the processing date. An empty map signals no_stock.
type StockSource interface {
	LatestBySKU(ctx context.Context, date string) (map[string]StockLevels, error)
}

// Provisioner prepares the external tables backing the aggregate queries
// for one processing date. A failure here is fatal to the run.
type Provisioner interface {
	Provision(ctx context.Context, date string) error
}
