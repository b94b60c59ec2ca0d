package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/procura/internal/config"
	"github.com/smallbiznis/procura/internal/datagen"
	"github.com/smallbiznis/procura/internal/hdfs"
	"github.com/smallbiznis/procura/internal/observability"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Generates one day of synthetic POS order and warehouse stock files and
// uploads them to HDFS, so a pipeline run has inputs to reconcile.
func main() {
	var date string
	var upload bool
	flag.StringVar(&date, "date", time.Now().UTC().Format("2006-01-02"), "date to generate (YYYY-MM-DD)")
	flag.BoolVar(&upload, "upload", true, "upload generated files to HDFS")
	flag.Parse()

	var gen *datagen.Generator
	var client *hdfs.Client
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		hdfs.Module,
		datagen.Module,
		fx.Populate(&gen, &client),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		os.Exit(1)
	}

	err := gen.Generate(date)
	if err == nil && upload {
		err = gen.Upload(ctx, client, date)
	}
	if err != nil {
		zap.L().Error("seed failed", zap.Error(err))
	}

	if stopErr := app.Stop(ctx); stopErr != nil {
		zap.L().Error("shutdown failed", zap.Error(stopErr))
	}
	if err != nil {
		os.Exit(1)
	}
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
