package store

import "database/sql"

// Column names mirror the blob encoding exactly so the local tables and the
// remote CSV blobs stay drop-in substitutable for any external reader.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
  timestamp TEXT NOT NULL,
  machine TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS roster (
  Machines TEXT NOT NULL,
  Spec TEXT NOT NULL DEFAULT '',
  Note TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS revisions (
  tbl TEXT PRIMARY KEY,
  rev INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_machine ON records(machine);
`

func bootstrapSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
