package orders

import (
	"testing"
	"time"

	"github.com/smallbiznis/procura/internal/demand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_GroupsBySupplier(t *testing.T) {
	now := time.Date(2026, 8, 27, 22, 5, 0, 0, time.UTC)
	records := map[string]demand.Record{
		"SKU001": {SKU: "SKU001", SupplierID: "SUP001", FinalQuantity: 100},
		"SKU002": {SKU: "SKU002", SupplierID: "SUP002", FinalQuantity: 40},
		"SKU003": {SKU: "SKU003", SupplierID: "SUP001", FinalQuantity: 60},
	}

	docs := Build(records, "2026-08-27", now)

	require.Len(t, docs, 2)
	assert.Equal(t, "SUP001", docs[0].SupplierID)
	assert.Equal(t, "SUP002", docs[1].SupplierID)

	sup1 := docs[0]
	assert.Equal(t, 2, sup1.TotalItems)
	assert.Equal(t, 160, sup1.TotalQuantity)
	assert.Equal(t, "2026-08-27", sup1.OrderDate)
	assert.Equal(t, now, sup1.GeneratedAt)
	require.Len(t, sup1.Items, 2)
	assert.Equal(t, "SKU001", sup1.Items[0].SKU)
	assert.Equal(t, "SKU003", sup1.Items[1].SKU)

	sup2 := docs[1]
	assert.Equal(t, 1, sup2.TotalItems)
	assert.Equal(t, 40, sup2.TotalQuantity)
}

func TestBuild_EmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil, "2026-08-27", time.Now()))
	assert.Empty(t, Build(map[string]demand.Record{}, "2026-08-27", time.Now()))
}

func TestBuild_Deterministic(t *testing.T) {
	now := time.Now().UTC()
	records := map[string]demand.Record{
		"SKU005": {SKU: "SKU005", SupplierID: "SUP003", FinalQuantity: 5},
		"SKU001": {SKU: "SKU001", SupplierID: "SUP001", FinalQuantity: 1},
		"SKU003": {SKU: "SKU003", SupplierID: "SUP001", FinalQuantity: 3},
	}

	first := Build(records, "2026-08-27", now)
	second := Build(records, "2026-08-27", now)
	assert.Equal(t, first, second)
}
