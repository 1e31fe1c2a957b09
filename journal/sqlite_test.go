package journal

import (
	"database/sql"
	"math"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "runs.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func testRecord(id string, created time.Time) RunRecord {
	return RunRecord{
		RunID:        id,
		Created:      created,
		Symbol:       "SLAB",
		Dataset:      "SLAB_52W",
		InitialBank:  50000,
		GobbleAmount: 1000,
		ExitRate:     0.03,
		Ticks:        52,
		FinalBank:    48200,
		FinalStock:   30,
		FinalValue:   51500,
		Gain:         1.03,
		StockGain:    1.1,
		TotalProfit:  1500,
		OpenLots:     3,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='runs'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "runs", name)
}

func TestSQLiteRecordAndGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := testRecord("RUN1", created)
	require.NoError(t, j.RecordRun(rec))

	got, err := j.GetRun("RUN1")
	require.NoError(t, err)
	assert.Equal(t, rec.Symbol, got.Symbol)
	assert.Equal(t, rec.Dataset, got.Dataset)
	assert.Equal(t, rec.Ticks, got.Ticks)
	assert.InDelta(t, rec.Gain, got.Gain, 1e-9)
	assert.True(t, created.Equal(got.Created))

	_, err = j.GetRun("missing")
	assert.Error(t, err)
}

func TestSQLiteUndefinedGainRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	rec := testRecord("RUN2", time.Now().UTC())
	rec.InitialBank = 0
	rec.Gain = math.NaN()
	require.NoError(t, j.RecordRun(rec))

	got, err := j.GetRun("RUN2")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Gain))
}

func TestSQLiteListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordRun(testRecord("A", base)))
	require.NoError(t, j.RecordRun(testRecord("B", base.Add(time.Hour))))
	require.NoError(t, j.RecordRun(testRecord("C", base.Add(2*time.Hour))))

	recs, err := j.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "C", recs[0].RunID)
	assert.Equal(t, "B", recs[1].RunID)

	all, err := j.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
