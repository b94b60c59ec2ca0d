package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/smallbiznis/procura/internal/clock"
	"github.com/smallbiznis/procura/internal/config"
	"github.com/smallbiznis/procura/internal/demand"
	"github.com/smallbiznis/procura/internal/exception"
	masterdomain "github.com/smallbiznis/procura/internal/masterdata/domain"
	obsmetrics "github.com/smallbiznis/procura/internal/observability/metrics"
	"github.com/smallbiznis/procura/internal/orders"
	warehousedomain "github.com/smallbiznis/procura/internal/warehouse/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Config      config.Config
	MasterData  masterdomain.Repository
	Orders      warehousedomain.OrderSource
	Stock       warehousedomain.StockSource
	Provisioner warehousedomain.Provisioner
	Replicator  orders.Replicator `optional:"true"`
	Clock       clock.Clock
}

// Pipeline reconciles one processing date end to end: aggregates in,
// supplier order documents and an exception report out.
type Pipeline struct {
	db          *gorm.DB
	log         *zap.Logger
	cfg         config.Config
	masterData  masterdomain.Repository
	orderSource warehousedomain.OrderSource
	stockSource warehousedomain.StockSource
	provisioner warehousedomain.Provisioner
	replicator  orders.Replicator
	clock       clock.Clock
	calculator  *demand.Calculator
}

func New(p Params) *Pipeline {
	return &Pipeline{
		db:          p.DB,
		log:         p.Log.Named("pipeline"),
		cfg:         p.Config,
		masterData:  p.MasterData,
		orderSource: p.Orders,
		stockSource: p.Stock,
		provisioner: p.Provisioner,
		replicator:  p.Replicator,
		clock:       p.Clock,
		calculator:  demand.NewCalculator(p.Log, p.Config.PinnedMOQWarehouse),
	}
}

// Summary reports what a completed run did, exceptions included.
type Summary struct {
	Date          string
	RunID         string
	SKUsToOrder   int
	UnitsToOrder  int
	SupplierFiles int
	Exceptions    int
}

// Run executes the full reconciliation for one date. It returns an error
// only for fatal preconditions (table provisioning, master data); every
// per-SKU or per-aggregate failure degrades to an exception and the run
// completes. Reruns for the same date overwrite the previous outputs.
func (p *Pipeline) Run(ctx context.Context, date string) (Summary, error) {
	start := p.clock.Now()
	runID := uuid.NewString()
	log := p.log.With(zap.String("date", date), zap.String("run_id", runID))
	metrics := obsmetrics.Pipeline()

	log.Info("pipeline started")

	if err := p.provisioner.Provision(ctx, date); err != nil {
		metrics.IncRun("fatal")
		return Summary{}, fmt.Errorf("provision aggregate tables: %w", err)
	}

	catalog, err := p.masterData.LoadCatalog(ctx, p.db)
	if err != nil {
		metrics.IncRun("fatal")
		return Summary{}, fmt.Errorf("load product catalog: %w", err)
	}
	rules, err := p.masterData.LoadRules(ctx, p.db)
	if err != nil {
		metrics.IncRun("fatal")
		return Summary{}, fmt.Errorf("load replenishment rules: %w", err)
	}
	log.Info("master data loaded",
		zap.Int("products", len(catalog)),
		zap.Int("rules", len(rules)),
	)

	excLog := exception.NewLog()
	orderTotals := p.fetchOrders(ctx, log, excLog, date)
	stockLevels := p.fetchStock(ctx, log, excLog, date)

	result := p.calculator.Calculate(orderTotals, stockLevels, catalog, rules)
	excLog.Append(result.Exceptions...)
	log.Info("net demand calculated", zap.Int("skus", len(result.Records)))

	docs := orders.Build(result.Records, date, p.clock.Now())
	writer := orders.NewWriter(p.cfg.OutputDir, p.cfg.HDFSOutputDir, p.replicator, p.log)
	files, err := writer.Write(ctx, docs)
	if err != nil {
		metrics.IncRun("fatal")
		return Summary{}, fmt.Errorf("write supplier orders: %w", err)
	}

	reportPath, err := exception.WriteReport(p.cfg.LogsDir, date, excLog)
	if err != nil {
		metrics.IncRun("fatal")
		return Summary{}, fmt.Errorf("flush exception log: %w", err)
	}
	if reportPath != "" {
		log.Warn("exceptions recorded",
			zap.Int("count", excLog.Len()),
			zap.String("report", reportPath),
		)
	}

	for kind, count := range excLog.CountByKind() {
		for i := 0; i < count; i++ {
			metrics.IncException(string(kind))
		}
	}
	metrics.AddUnitsOrdered(result.TotalUnits())
	metrics.IncRun("completed")
	metrics.ObserveRunDuration(p.clock.Now().Sub(start).Seconds())

	summary := Summary{
		Date:          date,
		RunID:         runID,
		SKUsToOrder:   len(result.Records),
		UnitsToOrder:  result.TotalUnits(),
		SupplierFiles: files,
		Exceptions:    excLog.Len(),
	}
	log.Info("pipeline completed",
		zap.Int("skus_to_order", summary.SKUsToOrder),
		zap.Int("units_to_order", summary.UnitsToOrder),
		zap.Int("supplier_files", summary.SupplierFiles),
		zap.Int("exceptions", summary.Exceptions),
	)
	return summary, nil
}

// fetchOrders obtains the cumulative order aggregate, degrading to an
// empty map on failure or absence. Never fatal.
func (p *Pipeline) fetchOrders(ctx context.Context, log *zap.Logger, excLog *exception.Log, date string) map[string]int {
	totals, err := p.orderSource.TotalsBySKU(ctx, date)
	if err != nil {
		log.Error("order aggregate query failed", zap.Error(err))
		excLog.Append(exception.TrinoError(err))
		return map[string]int{}
	}
	if len(totals) == 0 {
		log.Warn("no orders found for processing date")
		excLog.Append(exception.NoData("No orders found in Trino tables"))
		return totals
	}

	totalDemand := 0
	for _, qty := range totals {
		totalDemand += qty
	}
	log.Info("order aggregate loaded",
		zap.Int("skus", len(totals)),
		zap.Int("total_units", totalDemand),
	)
	return totals
}

// fetchStock obtains the latest stock snapshot aggregate with the same
// degrade-to-empty semantics.
func (p *Pipeline) fetchStock(ctx context.Context, log *zap.Logger, excLog *exception.Log, date string) map[string]warehousedomain.StockLevels {
	levels, err := p.stockSource.LatestBySKU(ctx, date)
	if err != nil {
		log.Error("stock aggregate query failed", zap.Error(err))
		excLog.Append(exception.TrinoError(err))
		return map[string]warehousedomain.StockLevels{}
	}
	if len(levels) == 0 {
		log.Warn("no stock snapshot on or before processing date")
		excLog.Append(exception.NoStock("No stock snapshots available"))
		return levels
	}
	log.Info("stock aggregate loaded", zap.Int("skus", len(levels)))
	return levels
}
