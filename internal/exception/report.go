package exception

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Report is the end-of-run exception document.
type Report struct {
	Date           string      `json:"date"`
	ExceptionCount int         `json:"exception_count"`
	Exceptions     []Exception `json:"exceptions"`
}

// WriteReport flushes the log to <logsDir>/exceptions/<date>_exceptions.json.
// An empty log writes nothing: the absence of the file is the clean-run
// signal for downstream auditing. Returns the path written, or "" when
// the flush was a no-op.
func WriteReport(logsDir, date string, log *Log) (string, error) {
	if log.Len() == 0 {
		return "", nil
	}

	dir := filepath.Join(logsDir, "exceptions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create exceptions dir: %w", err)
	}

	report := Report{
		Date:           date,
		ExceptionCount: log.Len(),
		Exceptions:     log.Entries(),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, date+"_exceptions.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write exception report: %w", err)
	}
	return path, nil
}
