package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/procura/internal/clock"
	"github.com/smallbiznis/procura/internal/config"
	"github.com/smallbiznis/procura/internal/datagen"
	"github.com/smallbiznis/procura/internal/hdfs"
	"github.com/smallbiznis/procura/internal/masterdata"
	"github.com/smallbiznis/procura/internal/observability"
	"github.com/smallbiznis/procura/internal/pipeline"
	"github.com/smallbiznis/procura/internal/scheduler"
	"github.com/smallbiznis/procura/internal/warehouse"
	"github.com/smallbiznis/procura/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,

		masterdata.Module,
		warehouse.Module,
		hdfs.Module,
		datagen.Module,
		pipeline.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
