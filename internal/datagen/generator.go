package datagen

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// Config controls the shape of a synthetic day of input data.
type Config struct {
	OrdersDir  string
	StockDir   string
	SKUs       int
	POSSystems int
	Warehouses int
	// MinOrders/MaxOrders bound the order count per POS system.
	MinOrders int
	MaxOrders int
}

func DefaultConfig() Config {
	return Config{
		OrdersDir:  "/data/raw/orders",
		StockDir:   "/data/raw/stock",
		SKUs:       25,
		POSSystems: 5,
		Warehouses: 3,
		MinOrders:  100,
		MaxOrders:  200,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.SKUs <= 0 {
		c.SKUs = defaults.SKUs
	}
	if c.POSSystems <= 0 {
		c.POSSystems = defaults.POSSystems
	}
	if c.Warehouses <= 0 {
		c.Warehouses = defaults.Warehouses
	}
	if c.MinOrders <= 0 {
		c.MinOrders = defaults.MinOrders
	}
	if c.MaxOrders < c.MinOrders {
		c.MaxOrders = c.MinOrders
	}
	return c
}

type orderLine struct {
	OrderID    string `json:"order_id"`
	POSID      string `json:"pos_id"`
	SKU        string `json:"sku"`
	Quantity   int    `json:"quantity"`
	OrderDate  string `json:"order_date"`
	OrderTime  string `json:"order_time"`
	CustomerID string `json:"customer_id"`
}

// Generator writes a realistic day of raw input: JSON-lines order files
// per POS system and CSV stock snapshots per warehouse. Demand is high
// and availability low so the pipeline produces actual shortages.
type Generator struct {
	cfg   Config
	genID *snowflake.Node
	rand  *rand.Rand
	log   *zap.Logger
}

func New(cfg Config, genID *snowflake.Node, rnd *rand.Rand, log *zap.Logger) *Generator {
	return &Generator{
		cfg:   cfg.withDefaults(),
		genID: genID,
		rand:  rnd,
		log:   log.Named("datagen"),
	}
}

// Generate writes both order and stock files for the date.
func (g *Generator) Generate(date string) error {
	if err := g.GenerateOrders(date); err != nil {
		return err
	}
	return g.GenerateStock(date)
}

func (g *Generator) GenerateOrders(date string) error {
	dir := filepath.Join(g.cfg.OrdersDir, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create orders dir: %w", err)
	}

	for pos := 1; pos <= g.cfg.POSSystems; pos++ {
		posID := fmt.Sprintf("POS%03d", pos)
		count := g.cfg.MinOrders + g.rand.Intn(g.cfg.MaxOrders-g.cfg.MinOrders+1)

		f, err := os.Create(filepath.Join(dir, posID+"_orders.json"))
		if err != nil {
			return fmt.Errorf("create orders file: %w", err)
		}
		enc := json.NewEncoder(f)
		for i := 0; i < count; i++ {
			line := orderLine{
				OrderID:    "ORD" + g.genID.Generate().String(),
				POSID:      posID,
				SKU:        g.randomSKU(),
				Quantity:   1 + g.rand.Intn(15),
				OrderDate:  date,
				OrderTime:  fmt.Sprintf("%02d:%02d:00", 8+g.rand.Intn(15), g.rand.Intn(60)),
				CustomerID: fmt.Sprintf("CUST%04d", 1000+g.rand.Intn(9000)),
			}
			if err := enc.Encode(line); err != nil {
				f.Close()
				return fmt.Errorf("write order line: %w", err)
			}
		}
		if err := f.Close(); err != nil {
			return err
		}
		g.log.Info("orders generated", zap.String("pos_id", posID), zap.Int("orders", count))
	}
	return nil
}

func (g *Generator) GenerateStock(date string) error {
	dir := filepath.Join(g.cfg.StockDir, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create stock dir: %w", err)
	}

	header := []string{"warehouse_id", "sku", "available_stock", "reserved_stock", "safety_stock", "snapshot_date", "snapshot_time"}

	for wh := 1; wh <= g.cfg.Warehouses; wh++ {
		warehouseID := fmt.Sprintf("WH%03d", wh)

		f, err := os.Create(filepath.Join(dir, warehouseID+"_stock.csv"))
		if err != nil {
			return fmt.Errorf("create stock file: %w", err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			f.Close()
			return err
		}
		for i := 1; i <= g.cfg.SKUs; i++ {
			available := 20 + g.rand.Intn(81)
			reserved := g.rand.Intn(available/5 + 1)
			safety := 80 + g.rand.Intn(71)
			record := []string{
				warehouseID,
				fmt.Sprintf("SKU%03d", i),
				strconv.Itoa(available),
				strconv.Itoa(reserved),
				strconv.Itoa(safety),
				date,
				"23:59:59",
			}
			if err := w.Write(record); err != nil {
				f.Close()
				return err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		g.log.Info("stock generated", zap.String("warehouse_id", warehouseID), zap.Int("skus", g.cfg.SKUs))
	}
	return nil
}

func (g *Generator) randomSKU() string {
	return fmt.Sprintf("SKU%03d", 1+g.rand.Intn(g.cfg.SKUs))
}
