package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs table: one row per word count job
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    status TEXT NOT NULL,              -- running, success, failed

    input_path TEXT NOT NULL,
    input_hash TEXT,
    input_bytes INTEGER DEFAULT 0,
    output_dir TEXT NOT NULL,
    stopword_path TEXT NOT NULL,
    stopword_count INTEGER DEFAULT 0,

    workers INTEGER DEFAULT 0,
    chunk_size INTEGER DEFAULT 0,
    top_k INTEGER DEFAULT 0,

    -- Record statistics
    line_count INTEGER DEFAULT 0,
    blank_count INTEGER DEFAULT 0,
    discarded_count INTEGER DEFAULT 0,
    kept_count INTEGER DEFAULT 0,
    pair_count INTEGER DEFAULT 0,
    partition_count INTEGER DEFAULT 0,
    unroutable_count INTEGER DEFAULT 0,

    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_input_hash ON runs(input_hash);

-- Top words per output stream for each run
CREATE TABLE IF NOT EXISTS run_top_words (
    run_id INTEGER NOT NULL,
    stream TEXT NOT NULL,              -- positive, negative
    position INTEGER NOT NULL,
    word TEXT NOT NULL,
    occurrences INTEGER NOT NULL,
    PRIMARY KEY (run_id, stream, position),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_top_words_word ON run_top_words(word);
`
