package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/smallbiznis/procura/internal/clock"
	"github.com/smallbiznis/procura/internal/config"
	"github.com/smallbiznis/procura/internal/hdfs"
	"github.com/smallbiznis/procura/internal/masterdata"
	"github.com/smallbiznis/procura/internal/observability"
	"github.com/smallbiznis/procura/internal/pipeline"
	"github.com/smallbiznis/procura/internal/warehouse"
	"github.com/smallbiznis/procura/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	var date string
	flag.StringVar(&date, "date", time.Now().UTC().Format("2006-01-02"), "processing date (YYYY-MM-DD)")
	flag.Parse()

	var pipe *pipeline.Pipeline
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		db.Module,
		masterdata.Module,
		warehouse.Module,
		hdfs.Module,
		pipeline.Module,
		fx.Populate(&pipe),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		// Upstream connections could not be established: fatal precondition.
		os.Exit(1)
	}

	_, runErr := pipe.Run(ctx, date)
	if runErr != nil {
		zap.L().Error("pipeline run failed", zap.Error(runErr))
	}

	if err := app.Stop(ctx); err != nil {
		zap.L().Error("shutdown failed", zap.Error(err))
	}
	if runErr != nil {
		os.Exit(1)
	}
}
