package datagen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Uploader replicates a local raw-data directory into HDFS.
type Uploader interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	Mkdir(ctx context.Context, path string) error
}

// Upload pushes the date's generated order and stock files to HDFS so the
// Trino external tables can see them. Unlike order replication this is a
// hard requirement: the pipeline has no inputs without it.
func (g *Generator) Upload(ctx context.Context, client Uploader, date string) error {
	dirs := []struct {
		local  string
		remote string
		suffix string
	}{
		{filepath.Join(g.cfg.OrdersDir, date), g.remotePath(g.cfg.OrdersDir, date), ".json"},
		{filepath.Join(g.cfg.StockDir, date), g.remotePath(g.cfg.StockDir, date), ".csv"},
	}

	for _, d := range dirs {
		if err := client.Mkdir(ctx, d.remote); err != nil {
			return fmt.Errorf("mkdir %s: %w", d.remote, err)
		}

		entries, err := os.ReadDir(d.local)
		if err != nil {
			return fmt.Errorf("read %s: %w", d.local, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), d.suffix) {
				continue
			}
			data, err := os.ReadFile(filepath.Join(d.local, entry.Name()))
			if err != nil {
				return err
			}
			remote := d.remote + "/" + entry.Name()
			if err := client.WriteFile(ctx, remote, data); err != nil {
				return fmt.Errorf("upload %s: %w", remote, err)
			}
			g.log.Info("uploaded", zap.String("path", remote))
		}
	}
	return nil
}

// remotePath keeps the HDFS layout identical to the local one. Generated
// data always lives under absolute /data paths in both stores.
func (g *Generator) remotePath(base, date string) string {
	return strings.TrimRight(base, "/") + "/" + date
}
