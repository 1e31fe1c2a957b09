package journal

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	dataset TEXT NOT NULL,
	initial_bank REAL NOT NULL,
	gobble_amount REAL NOT NULL,
	exit_rate REAL NOT NULL,
	ticks INTEGER NOT NULL,
	final_bank REAL NOT NULL,
	final_stock INTEGER NOT NULL,
	final_value REAL NOT NULL,
	gain REAL,
	stock_gain REAL NOT NULL,
	total_profit REAL NOT NULL,
	open_lots INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
CREATE INDEX IF NOT EXISTS idx_runs_symbol ON runs(symbol);
`
