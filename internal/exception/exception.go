package exception

import "fmt"

// Kind enumerates the closed taxonomy of data-quality anomalies a run can
// observe. Every kind is recoverable: the run continues degraded and the
// anomaly is reported at end-of-run.
type Kind string

const (
	// KindNoData is raised when the order aggregate returns zero SKUs.
	KindNoData Kind = "no_data"
	// KindNoStock is raised when no stock snapshot exists on or before
	// the processing date.
	KindNoStock Kind = "no_stock"
	// KindTrinoError is raised when an aggregate query fails outright.
	KindTrinoError Kind = "trino_error"
	// KindMissingProduct is raised per SKU absent from active master data.
	KindMissingProduct Kind = "missing_product"
	// KindDemandSpike flags a raw demand above five times safety stock.
	// Informational only; the record is still produced.
	KindDemandSpike Kind = "demand_spike"
)

// Exception is a single anomaly entry. Entries are immutable once created.
type Exception struct {
	Kind        Kind   `json:"type"`
	SKU         string `json:"sku,omitempty"`
	Message     string `json:"message,omitempty"`
	NetDemand   int    `json:"net_demand,omitempty"`
	SafetyStock int    `json:"safety_stock,omitempty"`
}

func NoData(message string) Exception {
	return Exception{Kind: KindNoData, Message: message}
}

func NoStock(message string) Exception {
	return Exception{Kind: KindNoStock, Message: message}
}

func TrinoError(err error) Exception {
	return Exception{Kind: KindTrinoError, Message: err.Error()}
}

func MissingProduct(sku string) Exception {
	return Exception{
		Kind:    KindMissingProduct,
		SKU:     sku,
		Message: fmt.Sprintf("SKU %s not in product catalog", sku),
	}
}

func DemandSpike(sku string, netDemand, safetyStock int) Exception {
	return Exception{
		Kind:        KindDemandSpike,
		SKU:         sku,
		NetDemand:   netDemand,
		SafetyStock: safetyStock,
	}
}
