package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Replicator copies a written document to a secondary store. Replication
// is best effort: failures are logged, never raised.
type Replicator interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	Mkdir(ctx context.Context, path string) error
}

// Writer persists supplier order documents under a per-date directory,
// one file per supplier, and replicates each to the secondary store.
type Writer struct {
	outputDir  string
	hdfsDir    string
	replicator Replicator
	log        *zap.Logger
}

func NewWriter(outputDir, hdfsDir string, replicator Replicator, log *zap.Logger) *Writer {
	return &Writer{
		outputDir:  outputDir,
		hdfsDir:    hdfsDir,
		replicator: replicator,
		log:        log.Named("orders"),
	}
}

// Write persists every document. The local file is authoritative; a rerun
// for the same date overwrites it. Returns the number of files written.
func (w *Writer) Write(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	date := docs[0].OrderDate
	localDir := filepath.Join(w.outputDir, date)
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	remoteDir := w.hdfsDir + "/" + date
	if w.replicator != nil {
		if err := w.replicator.Mkdir(ctx, remoteDir); err != nil {
			w.log.Warn("hdfs mkdir failed", zap.String("path", remoteDir), zap.Error(err))
		}
	}

	written := 0
	for _, doc := range docs {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return written, err
		}

		name := doc.SupplierID + "_order.json"
		localFile := filepath.Join(localDir, name)
		if err := os.WriteFile(localFile, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", localFile, err)
		}
		written++

		if w.replicator != nil {
			if err := w.replicator.WriteFile(ctx, remoteDir+"/"+name, data); err != nil {
				w.log.Warn("hdfs replication failed, local copy only",
					zap.String("supplier_id", doc.SupplierID),
					zap.Error(err),
				)
				continue
			}
		}

		w.log.Info("supplier order written",
			zap.String("supplier_id", doc.SupplierID),
			zap.Int("items", doc.TotalItems),
			zap.Int("units", doc.TotalQuantity),
		)
	}
	return written, nil
}
