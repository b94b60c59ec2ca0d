package warehouse

import (
	"context"
	"database/sql"

	"github.com/smallbiznis/procura/internal/config"
	"github.com/smallbiznis/procura/internal/warehouse/domain"
	"github.com/smallbiznis/procura/internal/warehouse/trino"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("warehouse",
	fx.Provide(provideTrinoConfig),
	fx.Provide(openTrino),
	fx.Provide(trino.New),
	fx.Provide(func(s *trino.Source) domain.OrderSource { return s }),
	fx.Provide(func(s *trino.Source) domain.StockSource { return s }),
	fx.Provide(func(s *trino.Source) domain.Provisioner { return s }),
)

func provideTrinoConfig(cfg config.Config) trino.Config {
	return trino.Config{
		DSN:           cfg.TrinoDSN(),
		Schema:        cfg.TrinoSchema,
		HDFSDataURL:   cfg.HDFSDataURL,
		RawOrdersPath: cfg.HDFSRawOrders,
		RawStockPath:  cfg.HDFSRawStock,
	}
}

func openTrino(lc fx.Lifecycle, cfg trino.Config, log *zap.Logger) (*sql.DB, error) {
	db, err := trino.Open(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("connected to trino")
	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return db.Close()
			},
		})
	}
	return db, nil
}
