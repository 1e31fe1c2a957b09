package journal

import (
	"database/sql"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the run journal backed by a SQLite database. Run IDs are
// ULIDs, so the primary key sorts by creation time.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	// An undefined gain (zero initial bank) is stored as NULL.
	gain := sql.NullFloat64{Float64: r.Gain, Valid: !math.IsNaN(r.Gain)}

	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, symbol, dataset, initial_bank, gobble_amount, exit_rate,
		 ticks, final_bank, final_stock, final_value, gain, stock_gain, total_profit, open_lots)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Symbol, r.Dataset, r.InitialBank, r.GobbleAmount, r.ExitRate,
		r.Ticks, r.FinalBank, r.FinalStock, r.FinalValue, gain, r.StockGain, r.TotalProfit, r.OpenLots,
	)
	return err
}

func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`
		SELECT run_id, created, symbol, dataset, initial_bank, gobble_amount, exit_rate,
		       ticks, final_bank, final_stock, final_value, gain, stock_gain, total_profit, open_lots
		FROM runs WHERE run_id = ?`, runID)

	rec, err := scanRun(row)
	if err == sql.ErrNoRows {
		return RunRecord{}, fmt.Errorf("journal: run %s not found", runID)
	}
	return rec, err
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns everything.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	q := `
		SELECT run_id, created, symbol, dataset, initial_bank, gobble_amount, exit_rate,
		       ticks, final_bank, final_stock, final_value, gain, stock_gain, total_profit, open_lots
		FROM runs ORDER BY created DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var rec RunRecord
	var gain sql.NullFloat64

	err := s.Scan(
		&rec.RunID, &rec.Created, &rec.Symbol, &rec.Dataset,
		&rec.InitialBank, &rec.GobbleAmount, &rec.ExitRate,
		&rec.Ticks, &rec.FinalBank, &rec.FinalStock, &rec.FinalValue,
		&gain, &rec.StockGain, &rec.TotalProfit, &rec.OpenLots,
	)
	if err != nil {
		return RunRecord{}, err
	}

	rec.Gain = math.NaN()
	if gain.Valid {
		rec.Gain = gain.Float64
	}
	return rec, nil
}
