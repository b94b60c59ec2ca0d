package scheduler

import (
	"context"
	"fmt"

	"github.com/smallbiznis/procura/internal/datagen"
	"github.com/smallbiznis/procura/internal/hdfs"
	"github.com/smallbiznis/procura/internal/pipeline"
	"go.uber.org/zap"
)

// NightlyJob is the full daily sequence: generate the day's raw data,
// upload it to HDFS, then reconcile demand for the same date. Generation
// and upload are fatal to the night's run; the pipeline itself degrades
// internally and only fails on broken preconditions.
type NightlyJob struct {
	gen  *datagen.Generator
	hdfs *hdfs.Client
	pipe *pipeline.Pipeline
	log  *zap.Logger
}

func NewNightlyJob(gen *datagen.Generator, client *hdfs.Client, pipe *pipeline.Pipeline, log *zap.Logger) *NightlyJob {
	return &NightlyJob{
		gen:  gen,
		hdfs: client,
		pipe: pipe,
		log:  log.Named("nightly"),
	}
}

func (j *NightlyJob) RunDate(ctx context.Context, date string) error {
	j.log.Info("generating raw data", zap.String("date", date))
	if err := j.gen.Generate(date); err != nil {
		return fmt.Errorf("generate data: %w", err)
	}

	j.log.Info("uploading raw data to hdfs", zap.String("date", date))
	if err := j.gen.Upload(ctx, j.hdfs, date); err != nil {
		return fmt.Errorf("upload to hdfs: %w", err)
	}

	if _, err := j.pipe.Run(ctx, date); err != nil {
		return err
	}
	return nil
}
