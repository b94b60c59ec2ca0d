package demand

import (
	"sort"

	"github.com/smallbiznis/procura/internal/exception"
	masterdomain "github.com/smallbiznis/procura/internal/masterdata/domain"
	warehousedomain "github.com/smallbiznis/procura/internal/warehouse/domain"
	"go.uber.org/zap"
)

// Record is the per-SKU net-demand decision. Immutable once created; a
// record only exists for SKUs with a positive raw demand.
type Record struct {
	SKU              string `json:"sku"`
	ProductName      string `json:"product_name"`
	SupplierID       string `json:"supplier_id"`
	HistoricalOrders int    `json:"historical_orders"`
	CurrentStock     int    `json:"current_stock"`
	SafetyStock      int    `json:"safety_stock"`
	RawDemand        int    `json:"raw_demand"`
	RoundedDemand    int    `json:"rounded_demand"`
	FinalQuantity    int    `json:"final_quantity"`
	CaseSize         int    `json:"case_size"`
	MOQ              int    `json:"moq"`
}

// Result is a calculation outcome: the decided records plus every
// data-quality exception observed while deciding them. The calculator
// never touches shared state; the caller owns appending these to the
// run's exception log.
type Result struct {
	Records    map[string]Record
	Exceptions []exception.Exception
}

// TotalUnits sums finalQuantity across all records.
func (r Result) TotalUnits() int {
	total := 0
	for _, rec := range r.Records {
		total += rec.FinalQuantity
	}
	return total
}

// defaultStock substitutes for SKUs that have order demand but no row in
// the stock snapshot. The generous safety stock forces a reorder rather
// than assuming the SKU is covered.
var defaultStock = warehousedomain.StockLevels{Available: 0, Reserved: 0, SafetyStock: 50}

const spikeFactor = 5

// Calculator derives net-demand decisions from the two aggregates and
// master data. Pure computation over already-fetched maps; it performs
// no I/O and cannot fail.
type Calculator struct {
	log *zap.Logger
	// moqWarehouse pins the replenishment-rule lookup to one warehouse
	// key, regardless of which warehouses contributed stock. Known
	// simplification inherited from the deployment this replaces; a
	// per-contributing-warehouse resolution would change finalQuantity
	// for multi-warehouse SKUs.
	moqWarehouse string
}

func NewCalculator(log *zap.Logger, moqWarehouse string) *Calculator {
	return &Calculator{
		log:          log.Named("calculator"),
		moqWarehouse: moqWarehouse,
	}
}

// Calculate processes the union of the two aggregate key sets. A SKU
// missing from master data is skipped with a missing_product exception;
// a SKU missing from one aggregate is still processed with that side
// defaulted. SKUs are visited in lexical order so identical inputs yield
// identical outputs regardless of map iteration.
func (c *Calculator) Calculate(
	orders map[string]int,
	stock map[string]warehousedomain.StockLevels,
	catalog map[string]masterdomain.CatalogEntry,
	rules map[masterdomain.RuleKey]masterdomain.ReplenishmentRule,
) Result {
	result := Result{Records: make(map[string]Record)}

	skus := unionKeys(orders, stock)
	previews := make([]preview, 0, len(skus))

	for _, sku := range skus {
		entry, ok := catalog[sku]
		if !ok {
			result.Exceptions = append(result.Exceptions, exception.MissingProduct(sku))
			continue
		}

		totalOrders := orders[sku]
		levels, ok := stock[sku]
		if !ok {
			levels = defaultStock
		}

		// Negative available is meaningful (oversold) and stays unclamped.
		availableNet := levels.Available - levels.Reserved
		required := totalOrders + levels.SafetyStock
		rawDemand := required - availableNet
		if rawDemand < 0 {
			rawDemand = 0
		}

		previews = append(previews, preview{
			sku:         sku,
			totalOrders: totalOrders,
			available:   availableNet,
			safetyStock: levels.SafetyStock,
			netDemand:   rawDemand,
		})

		if rawDemand > levels.SafetyStock*spikeFactor {
			result.Exceptions = append(result.Exceptions,
				exception.DemandSpike(sku, rawDemand, levels.SafetyStock))
		}

		if rawDemand == 0 {
			continue
		}

		roundedDemand := ceilToMultiple(rawDemand, entry.CaseSize)

		moq := masterdomain.DefaultMOQ
		if rule, ok := rules[masterdomain.RuleKey{SKU: sku, WarehouseID: c.moqWarehouse}]; ok {
			moq = rule.MinimumOrderQuantity
		}

		finalQuantity := roundedDemand
		if moq > finalQuantity {
			finalQuantity = moq
		}

		result.Records[sku] = Record{
			SKU:              sku,
			ProductName:      entry.ProductName,
			SupplierID:       entry.SupplierID,
			HistoricalOrders: totalOrders,
			CurrentStock:     availableNet,
			SafetyStock:      levels.SafetyStock,
			RawDemand:        rawDemand,
			RoundedDemand:    roundedDemand,
			FinalQuantity:    finalQuantity,
			CaseSize:         entry.CaseSize,
			MOQ:              moq,
		}
	}

	c.logPreview(previews)

	return result
}

// ceilToMultiple rounds n up to the smallest multiple of size >= n.
// A case size below 1 is treated as 1.
func ceilToMultiple(n, size int) int {
	if size < 1 {
		size = 1
	}
	return ((n + size - 1) / size) * size
}

func unionKeys(orders map[string]int, stock map[string]warehousedomain.StockLevels) []string {
	seen := make(map[string]struct{}, len(orders)+len(stock))
	for sku := range orders {
		seen[sku] = struct{}{}
	}
	for sku := range stock {
		seen[sku] = struct{}{}
	}
	skus := make([]string, 0, len(seen))
	for sku := range seen {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

type preview struct {
	sku         string
	totalOrders int
	available   int
	safetyStock int
	netDemand   int
}

// logPreview reports the top five calculations by net demand, ties broken
// by SKU, as a diagnostic only.
func (c *Calculator) logPreview(previews []preview) {
	if len(previews) == 0 {
		return
	}
	sort.Slice(previews, func(i, j int) bool {
		if previews[i].netDemand != previews[j].netDemand {
			return previews[i].netDemand > previews[j].netDemand
		}
		return previews[i].sku < previews[j].sku
	})
	if len(previews) > 5 {
		previews = previews[:5]
	}
	for _, p := range previews {
		c.log.Info("net demand preview",
			zap.String("sku", p.sku),
			zap.Int("orders", p.totalOrders),
			zap.Int("stock", p.available),
			zap.Int("safety", p.safetyStock),
			zap.Int("net_demand", p.netDemand),
		)
	}
}
