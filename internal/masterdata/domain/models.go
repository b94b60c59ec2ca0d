package domain

// Product is a catalog row. CaseSize drives order rounding and is always >= 1.
type Product struct {
	SKU         string `json:"sku" gorm:"column:sku;primaryKey"`
	ProductName string `json:"product_name" gorm:"column:product_name;not null"`
	SupplierID  string `json:"supplier_id" gorm:"column:supplier_id;not null"`
	PackSize    int    `json:"pack_size" gorm:"column:pack_size;not null;default:1"`
	CaseSize    int    `json:"case_size" gorm:"column:case_size;not null;default:1"`
	Active      bool   `json:"active" gorm:"column:active;not null;default:true"`
}

func (Product) TableName() string { return "products" }

type Supplier struct {
	SupplierID   string `json:"supplier_id" gorm:"column:supplier_id;primaryKey"`
	SupplierName string `json:"supplier_name" gorm:"column:supplier_name;not null"`
	LeadTimeDays int    `json:"lead_time_days" gorm:"column:lead_time_days;not null;default:3"`
	Active       bool   `json:"active" gorm:"column:active;not null;default:true"`
}

func (Supplier) TableName() string { return "suppliers" }

// ReplenishmentRule is keyed by (sku, warehouse). A SKU/warehouse pair
// without a rule falls back to a minimum order quantity of 1.
type ReplenishmentRule struct {
	SKU                  string `json:"sku" gorm:"column:sku;primaryKey"`
	WarehouseID          string `json:"warehouse_id" gorm:"column:warehouse_id;primaryKey"`
	SafetyStock          int    `json:"safety_stock" gorm:"column:safety_stock;not null;default:0"`
	MinimumOrderQuantity int    `json:"minimum_order_quantity" gorm:"column:minimum_order_quantity;not null;default:1"`
	Active               bool   `json:"active" gorm:"column:active;not null;default:true"`
}

func (ReplenishmentRule) TableName() string { return "replenishment_rules" }

// RuleKey is the composite lookup key for replenishment rules.
type RuleKey struct {
	SKU         string
	WarehouseID string
}

// CatalogEntry is an active product joined with its active supplier.
// Only entries whose product AND supplier are active make it into the
// catalog; everything else is treated as missing.
type CatalogEntry struct {
	SKU          string `gorm:"column:sku"`
	ProductName  string `gorm:"column:product_name"`
	SupplierID   string `gorm:"column:supplier_id"`
	PackSize     int    `gorm:"column:pack_size"`
	CaseSize     int    `gorm:"column:case_size"`
	SupplierName string `gorm:"column:supplier_name"`
	LeadTimeDays int    `gorm:"column:lead_time_days"`
}

const DefaultMOQ = 1
