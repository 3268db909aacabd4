// Package cache keeps the incremental build manifest: one row per
// (template, variant) recording the input checksum and configuration
// fingerprint that produced the output file on disk.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	appErrors "rosepine/internal/errors"
)

// FileName is the manifest's default name inside the output directory.
const FileName = ".rosepine-cache.db"

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	source      TEXT NOT NULL,
	variant     TEXT NOT NULL,
	checksum    TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	output      TEXT NOT NULL,
	built_at    INTEGER NOT NULL,
	PRIMARY KEY (source, variant)
)`

// Entry is one manifest row.
type Entry struct {
	Source      string
	Variant     string
	Checksum    string
	Fingerprint string
	Output      string
	BuiltAt     time.Time
}

// Matches reports whether e was built from the same input and settings as
// other. Output paths and timestamps are ignored.
func (e Entry) Matches(other Entry) bool {
	return e.Source == other.Source &&
		e.Variant == other.Variant &&
		e.Checksum == other.Checksum &&
		e.Fingerprint == other.Fingerprint
}

// Manifest is an open build manifest. It is safe for sequential use only.
type Manifest struct {
	path string
	db   *sql.DB
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Open opens (creating if needed) the manifest at path.
func Open(ctx context.Context, path string) (*Manifest, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeCacheFailed, "cache path is empty", nil)
	}
	//nolint:gosec // G301: output directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, cacheError("create cache directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, cacheError("open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, cacheError("ping sqlite db", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, cacheError("create schema", err)
	}
	return &Manifest{path: trimmed, db: db}, nil
}

// Path returns the manifest file location.
func (m *Manifest) Path() string {
	return m.path
}

// Lookup returns the entry for (source, variant), if any.
func (m *Manifest) Lookup(ctx context.Context, source, variant string) (Entry, bool, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT checksum, fingerprint, output, built_at
		FROM builds
		WHERE source = ? AND variant = ?
	`, source, variant)

	e := Entry{Source: source, Variant: variant}
	var builtAt int64
	if err := row.Scan(&e.Checksum, &e.Fingerprint, &e.Output, &builtAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, cacheError("lookup build", err)
	}
	e.BuiltAt = time.Unix(builtAt, 0)
	return e, true, nil
}

// Record inserts or replaces the entry for (e.Source, e.Variant). A zero
// BuiltAt is stamped with the current time.
func (m *Manifest) Record(ctx context.Context, e Entry) error {
	if e.BuiltAt.IsZero() {
		e.BuiltAt = time.Now()
	}
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO builds (source, variant, checksum, fingerprint, output, built_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (source, variant) DO UPDATE SET
			checksum = excluded.checksum,
			fingerprint = excluded.fingerprint,
			output = excluded.output,
			built_at = excluded.built_at
	`, e.Source, e.Variant, e.Checksum, e.Fingerprint, e.Output, e.BuiltAt.Unix())
	if err != nil {
		return cacheError("record build", err)
	}
	return nil
}

// Len returns the number of recorded builds.
func (m *Manifest) Len(ctx context.Context) (int, error) {
	var n int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&n); err != nil {
		return 0, cacheError("count builds", err)
	}
	return n, nil
}

// Close releases the database handle.
func (m *Manifest) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// Checksum returns the hex SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Fingerprint hashes the settings that influence rendered output, so changing
// any of them invalidates earlier builds.
func Fingerprint(parts ...string) string {
	return Checksum([]byte(strings.Join(parts, "\x00")))
}

func cacheError(op string, err error) error {
	return appErrors.New(appErrors.CodeCacheFailed, fmt.Sprintf("%s: %v", op, err), err)
}
