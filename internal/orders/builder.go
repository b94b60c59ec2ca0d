package orders

import (
	"sort"
	"time"

	"github.com/smallbiznis/procura/internal/demand"
)

// Document is one supplier purchase order for a processing date.
type Document struct {
	SupplierID    string          `json:"supplier_id"`
	OrderDate     string          `json:"order_date"`
	GeneratedAt   time.Time       `json:"generated_at"`
	TotalItems    int             `json:"total_items"`
	TotalQuantity int             `json:"total_quantity"`
	Items         []demand.Record `json:"items"`
}

// Build groups net-demand records into one document per supplier. Items
// keep the calculator's emission order (lexical by SKU) and documents are
// sorted by supplier id, so identical inputs serialize identically.
// An empty record set yields zero documents.
func Build(records map[string]demand.Record, orderDate string, generatedAt time.Time) []Document {
	if len(records) == 0 {
		return nil
	}

	skus := make([]string, 0, len(records))
	for sku := range records {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	bySupplier := make(map[string][]demand.Record)
	for _, sku := range skus {
		rec := records[sku]
		bySupplier[rec.SupplierID] = append(bySupplier[rec.SupplierID], rec)
	}

	supplierIDs := make([]string, 0, len(bySupplier))
	for id := range bySupplier {
		supplierIDs = append(supplierIDs, id)
	}
	sort.Strings(supplierIDs)

	docs := make([]Document, 0, len(supplierIDs))
	for _, id := range supplierIDs {
		items := bySupplier[id]
		total := 0
		for _, item := range items {
			total += item.FinalQuantity
		}
		docs = append(docs, Document{
			SupplierID:    id,
			OrderDate:     orderDate,
			GeneratedAt:   generatedAt,
			TotalItems:    len(items),
			TotalQuantity: total,
			Items:         items,
		})
	}
	return docs
}
