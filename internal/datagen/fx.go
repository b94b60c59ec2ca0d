package datagen

import (
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/procura/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("datagen",
	fx.Provide(provideConfig),
	fx.Provide(provideGenerator),
)

func provideConfig(cfg config.Config) Config {
	c := DefaultConfig()
	c.OrdersDir = cfg.HDFSRawOrders
	c.StockDir = cfg.HDFSRawStock
	return c
}

func provideGenerator(cfg Config, genID *snowflake.Node, log *zap.Logger) *Generator {
	return New(cfg, genID, rand.New(rand.NewSource(time.Now().UnixNano())), log)
}
