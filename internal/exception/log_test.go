package exception

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendAndCounts(t *testing.T) {
	log := NewLog()
	assert.Zero(t, log.Len())

	log.Append(NoData("no orders"))
	log.Append(MissingProduct("SKU001"), MissingProduct("SKU002"))
	log.Append(DemandSpike("SKU003", 600, 50))

	assert.Equal(t, 4, log.Len())
	counts := log.CountByKind()
	assert.Equal(t, 1, counts[KindNoData])
	assert.Equal(t, 2, counts[KindMissingProduct])
	assert.Equal(t, 1, counts[KindDemandSpike])
}

func TestLog_EntriesReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Append(NoStock("nothing"))

	entries := log.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, "nothing", log.Entries()[0].Message)
}

func TestWriteReport_EmptyLogWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteReport(dir, "2026-08-27", NewLog())
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = os.Stat(filepath.Join(dir, "exceptions"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteReport_FlushesDocument(t *testing.T) {
	dir := t.TempDir()
	log := NewLog()
	log.Append(TrinoError(errors.New("connection refused")))
	log.Append(MissingProduct("SKU009"))

	path, err := WriteReport(dir, "2026-08-27", log)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exceptions", "2026-08-27_exceptions.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "2026-08-27", report.Date)
	assert.Equal(t, 2, report.ExceptionCount)
	require.Len(t, report.Exceptions, 2)
	assert.Equal(t, KindTrinoError, report.Exceptions[0].Kind)
	assert.Equal(t, "connection refused", report.Exceptions[0].Message)
	assert.Equal(t, KindMissingProduct, report.Exceptions[1].Kind)
	assert.Equal(t, "SKU009", report.Exceptions[1].SKU)
}
