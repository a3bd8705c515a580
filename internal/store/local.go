package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"floorlog/internal/models"
)

const (
	busyTimeoutMS   = 5000
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
)

// Local is the fallback store used when no remote blob endpoint is
// configured: the same two logical tables in a local SQLite file, one writer
// at a time. It keeps the Store interface shape including version tokens —
// each table carries a monotonically increasing revision — but writes never
// conflict, since concurrent processes on one local file are out of scope.
type Local struct {
	db *sql.DB
}

// OpenLocal opens the SQLite database and bootstraps the schema.
func OpenLocal(path string) (*Local, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := bootstrapSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Local{db: db}, nil
}

// ListRecords returns all records in insertion order.
func (s *Local) ListRecords(ctx context.Context) ([]models.StatusRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT timestamp, machine, description FROM records ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.StatusRecord{}
	for rows.Next() {
		var ts, machine, description string
		if err := rows.Scan(&ts, &machine, &description); err != nil {
			return nil, err
		}
		parsed, err := models.ParseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("stored record: %w", err)
		}
		records = append(records, models.StatusRecord{
			Timestamp:   parsed,
			Machine:     machine,
			Description: description,
		})
	}
	return records, rows.Err()
}

// Append inserts one record and returns the resulting record set.
func (s *Local) Append(ctx context.Context, record models.StatusRecord) ([]models.StatusRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO records (timestamp, machine, description) VALUES (?, ?, ?)",
		models.FormatTimestamp(record.Timestamp), record.Machine, record.Description)
	if err != nil {
		return nil, err
	}
	if _, err = bumpRevision(ctx, tx, "records"); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.ListRecords(ctx)
}

// ListRoster returns the current roster.
func (s *Local) ListRoster(ctx context.Context) ([]models.RosterEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT Machines, Spec, Note FROM roster ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.RosterEntry{}
	for rows.Next() {
		var entry models.RosterEntry
		if err := rows.Scan(&entry.Machine, &entry.Spec, &entry.Note); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ReplaceRoster replaces the roster wholesale in one transaction.
func (s *Local) ReplaceRoster(ctx context.Context, entries []models.RosterEntry) (string, error) {
	var version string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM roster"); err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO roster (Machines, Spec, Note) VALUES (?, ?, ?)",
				entry.Machine, entry.Spec, entry.Note); err != nil {
				return err
			}
		}
		rev, err := bumpRevision(ctx, tx, "roster")
		if err != nil {
			return err
		}
		version = rev
		return nil
	})
	return version, err
}

// ClearRecords deletes every record, guarded by the confirmation phrase.
func (s *Local) ClearRecords(ctx context.Context, confirmation string) (string, error) {
	if err := checkClearConfirmation(confirmation); err != nil {
		return "", err
	}

	var version string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
			return err
		}
		rev, err := bumpRevision(ctx, tx, "records")
		if err != nil {
			return err
		}
		version = rev
		return nil
	})
	return version, err
}

// Close closes the underlying database connection.
func (s *Local) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Local) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// bumpRevision advances a table's revision counter and returns it as the
// version token. Locally a write always wins, so the token only has to be
// monotonic, never checked.
func bumpRevision(ctx context.Context, tx *sql.Tx, table string) (string, error) {
	var rev int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO revisions (tbl, rev) VALUES (?, 1)
		ON CONFLICT(tbl) DO UPDATE SET rev = rev + 1
		RETURNING rev
	`, table).Scan(&rev)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", rev), nil
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Tune connection pool for local usage.
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}
