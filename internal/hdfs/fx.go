package hdfs

import (
	"github.com/smallbiznis/procura/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("hdfs",
	fx.Provide(provideClient),
)

func provideClient(cfg config.Config, log *zap.Logger) *Client {
	return New(cfg.HDFSNamenodeURL, log)
}
