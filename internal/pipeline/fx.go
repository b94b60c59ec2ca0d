package pipeline

import (
	"github.com/smallbiznis/procura/internal/hdfs"
	"github.com/smallbiznis/procura/internal/orders"
	"go.uber.org/fx"
)

var Module = fx.Module("pipeline",
	fx.Provide(func(c *hdfs.Client) orders.Replicator { return c }),
	fx.Provide(New),
)
