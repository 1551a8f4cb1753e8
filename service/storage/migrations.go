package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS syncs (
    sync_id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid         TEXT UNIQUE NOT NULL,
    source           TEXT NOT NULL,
    target           TEXT NOT NULL,
    source_field     TEXT NOT NULL,
    target_field     TEXT NOT NULL,
    previous_version TEXT,
    version          TEXT NOT NULL,
    changed          INTEGER NOT NULL DEFAULT 0,
    dry_run          INTEGER NOT NULL DEFAULT 0,
    written          INTEGER NOT NULL DEFAULT 0,
    content_hash     TEXT,
    duration_ms      INTEGER,
    cli_version      TEXT,
    synced_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_syncs_target_synced_at
    ON syncs(target, synced_at);
CREATE INDEX IF NOT EXISTS idx_syncs_synced_at
    ON syncs(synced_at DESC);
`
