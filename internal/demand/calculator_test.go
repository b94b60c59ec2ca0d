package demand

import (
	"reflect"
	"testing"

	"github.com/smallbiznis/procura/internal/exception"
	masterdomain "github.com/smallbiznis/procura/internal/masterdata/domain"
	warehousedomain "github.com/smallbiznis/procura/internal/warehouse/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const moqWarehouse = "WH001"

func newCalculator() *Calculator {
	return NewCalculator(zap.NewNop(), moqWarehouse)
}

func catalogWith(entries ...masterdomain.CatalogEntry) map[string]masterdomain.CatalogEntry {
	catalog := make(map[string]masterdomain.CatalogEntry)
	for _, e := range entries {
		catalog[e.SKU] = e
	}
	return catalog
}

func product(sku string, caseSize int) masterdomain.CatalogEntry {
	return masterdomain.CatalogEntry{
		SKU:         sku,
		ProductName: "Product " + sku,
		SupplierID:  "SUP001",
		PackSize:    1,
		CaseSize:    caseSize,
	}
}

func rule(sku string, moq int) (masterdomain.RuleKey, masterdomain.ReplenishmentRule) {
	return masterdomain.RuleKey{SKU: sku, WarehouseID: moqWarehouse},
		masterdomain.ReplenishmentRule{
			SKU:                  sku,
			WarehouseID:          moqWarehouse,
			MinimumOrderQuantity: moq,
			Active:               true,
		}
}

func TestCalculate_ShortageWithRoundingAndMOQ(t *testing.T) {
	// orders=120, available=80, reserved=10, safety=100, case=10, moq=50
	key, r := rule("SKU001", 50)
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 120},
		map[string]warehousedomain.StockLevels{
			"SKU001": {Available: 80, Reserved: 10, SafetyStock: 100},
		},
		catalogWith(product("SKU001", 10)),
		map[masterdomain.RuleKey]masterdomain.ReplenishmentRule{key: r},
	)

	require.Len(t, result.Records, 1)
	rec := result.Records["SKU001"]
	assert.Equal(t, 70, rec.CurrentStock)
	assert.Equal(t, 150, rec.RawDemand)
	assert.Equal(t, 150, rec.RoundedDemand)
	assert.Equal(t, 150, rec.FinalQuantity)
	assert.Equal(t, 50, rec.MOQ)
	assert.Empty(t, result.Exceptions)
}

func TestCalculate_NoShortageEmitsNoRecord(t *testing.T) {
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 0},
		map[string]warehousedomain.StockLevels{
			"SKU001": {Available: 500, Reserved: 0, SafetyStock: 50},
		},
		catalogWith(product("SKU001", 10)),
		nil,
	)

	assert.Empty(t, result.Records)
	assert.Empty(t, result.Exceptions)
	assert.Equal(t, 0, result.TotalUnits())
}

func TestCalculate_MissingStockUsesDefault(t *testing.T) {
	// orders=30, no stock row: default {0,0,50} => required=80, raw=80
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 30},
		map[string]warehousedomain.StockLevels{},
		catalogWith(product("SKU001", 1)),
		nil,
	)

	require.Len(t, result.Records, 1)
	rec := result.Records["SKU001"]
	assert.Equal(t, 0, rec.CurrentStock)
	assert.Equal(t, 50, rec.SafetyStock)
	assert.Equal(t, 80, rec.RawDemand)
	assert.Equal(t, 80, rec.FinalQuantity)
}

func TestCalculate_MissingOrdersStillProcessed(t *testing.T) {
	// SKU only in the stock aggregate: zero historical orders, shortage
	// driven by safety stock alone.
	result := newCalculator().Calculate(
		map[string]int{},
		map[string]warehousedomain.StockLevels{
			"SKU002": {Available: 10, Reserved: 0, SafetyStock: 100},
		},
		catalogWith(product("SKU002", 1)),
		nil,
	)

	require.Len(t, result.Records, 1)
	rec := result.Records["SKU002"]
	assert.Equal(t, 0, rec.HistoricalOrders)
	assert.Equal(t, 90, rec.RawDemand)
}

func TestCalculate_DemandSpikeIsInformational(t *testing.T) {
	// raw=600 > 5*50: spike logged, record still produced
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 650},
		map[string]warehousedomain.StockLevels{
			"SKU001": {Available: 100, Reserved: 0, SafetyStock: 50},
		},
		catalogWith(product("SKU001", 1)),
		nil,
	)

	require.Len(t, result.Records, 1)
	assert.Equal(t, 600, result.Records["SKU001"].RawDemand)

	require.Len(t, result.Exceptions, 1)
	exc := result.Exceptions[0]
	assert.Equal(t, exception.KindDemandSpike, exc.Kind)
	assert.Equal(t, "SKU001", exc.SKU)
	assert.Equal(t, 600, exc.NetDemand)
	assert.Equal(t, 50, exc.SafetyStock)
}

func TestCalculate_MissingProductSkipped(t *testing.T) {
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 10, "GHOST": 500},
		map[string]warehousedomain.StockLevels{},
		catalogWith(product("SKU001", 1)),
		nil,
	)

	assert.Len(t, result.Records, 1)
	assert.NotContains(t, result.Records, "GHOST")

	require.Len(t, result.Exceptions, 1)
	exc := result.Exceptions[0]
	assert.Equal(t, exception.KindMissingProduct, exc.Kind)
	assert.Equal(t, "GHOST", exc.SKU)
	assert.Contains(t, exc.Message, "GHOST")
}

func TestCalculate_EmptyAggregates(t *testing.T) {
	result := newCalculator().Calculate(nil, nil, catalogWith(product("SKU001", 1)), nil)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Exceptions)
}

func TestCalculate_NegativeAvailableNotClamped(t *testing.T) {
	// reserved > available: oversold position increases demand
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 10},
		map[string]warehousedomain.StockLevels{
			"SKU001": {Available: 5, Reserved: 20, SafetyStock: 0},
		},
		catalogWith(product("SKU001", 1)),
		nil,
	)

	require.Len(t, result.Records, 1)
	rec := result.Records["SKU001"]
	assert.Equal(t, -15, rec.CurrentStock)
	assert.Equal(t, 25, rec.RawDemand)
}

func TestCalculate_MOQFloorApplied(t *testing.T) {
	key, r := rule("SKU001", 500)
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 60},
		map[string]warehousedomain.StockLevels{
			"SKU001": {Available: 50, Reserved: 0, SafetyStock: 20},
		},
		catalogWith(product("SKU001", 12)),
		map[masterdomain.RuleKey]masterdomain.ReplenishmentRule{key: r},
	)

	require.Len(t, result.Records, 1)
	rec := result.Records["SKU001"]
	assert.Equal(t, 30, rec.RawDemand)
	assert.Equal(t, 36, rec.RoundedDemand)
	assert.Equal(t, 500, rec.FinalQuantity)
}

func TestCalculate_RuleOnOtherWarehouseIgnored(t *testing.T) {
	// Rule lookup is pinned to WH001; a WH002 rule never applies.
	rules := map[masterdomain.RuleKey]masterdomain.ReplenishmentRule{
		{SKU: "SKU001", WarehouseID: "WH002"}: {
			SKU: "SKU001", WarehouseID: "WH002", MinimumOrderQuantity: 999,
		},
	}
	result := newCalculator().Calculate(
		map[string]int{"SKU001": 100},
		map[string]warehousedomain.StockLevels{
			"SKU001": {Available: 0, Reserved: 0, SafetyStock: 0},
		},
		catalogWith(product("SKU001", 1)),
		rules,
	)

	require.Len(t, result.Records, 1)
	assert.Equal(t, masterdomain.DefaultMOQ, result.Records["SKU001"].MOQ)
	assert.Equal(t, 100, result.Records["SKU001"].FinalQuantity)
}

func TestCalculate_RoundingProperties(t *testing.T) {
	catalog := catalogWith(
		product("SKU001", 7),
		product("SKU002", 10),
		product("SKU003", 1),
	)
	orders := map[string]int{"SKU001": 33, "SKU002": 91, "SKU003": 17}
	stock := map[string]warehousedomain.StockLevels{}

	result := newCalculator().Calculate(orders, stock, catalog, nil)

	for sku, rec := range result.Records {
		assert.GreaterOrEqual(t, rec.FinalQuantity, rec.RoundedDemand, sku)
		assert.GreaterOrEqual(t, rec.RoundedDemand, rec.RawDemand, sku)
		assert.Positive(t, rec.RawDemand, sku)
		assert.Zero(t, rec.RoundedDemand%rec.CaseSize, sku)
		assert.Less(t, rec.RoundedDemand, rec.RawDemand+rec.CaseSize, sku)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	catalog := catalogWith(product("SKU001", 3), product("SKU002", 5), product("SKU003", 8))
	orders := map[string]int{"SKU001": 40, "SKU002": 55, "SKU003": 12}
	stock := map[string]warehousedomain.StockLevels{
		"SKU001": {Available: 10, Reserved: 2, SafetyStock: 30},
		"SKU003": {Available: 1, Reserved: 0, SafetyStock: 90},
	}

	first := newCalculator().Calculate(orders, stock, catalog, nil)
	second := newCalculator().Calculate(orders, stock, catalog, nil)

	assert.True(t, reflect.DeepEqual(first.Records, second.Records))
	assert.Equal(t, first.Exceptions, second.Exceptions)
}

func TestCeilToMultiple(t *testing.T) {
	cases := []struct {
		n, size, want int
	}{
		{1, 10, 10},
		{10, 10, 10},
		{11, 10, 20},
		{150, 10, 150},
		{7, 1, 7},
		{5, 0, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ceilToMultiple(tc.n, tc.size))
	}
}
