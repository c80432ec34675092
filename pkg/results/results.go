// Package results keeps the last result set of each session so clients can
// page through it ("xem thêm") after a search. Sets expire after a TTL.
package results

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/rubiojr/hoi/pkg/db"
	"github.com/rubiojr/hoi/pkg/log"
	"github.com/rubiojr/hoi/pkg/snapshot"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var logger = log.ForService("results")

// ErrNotFound is returned when a session has no saved, unexpired set.
var ErrNotFound = errors.New("no saved results")

// DefaultSession names results saved without a session.
const DefaultSession = "default"

// Page is a window over a saved result set.
type Page struct {
	Results []snapshot.FileRecord `json:"results"`
	Offset  int                   `json:"offset"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"has_more"`
}

type Store struct {
	db    *sql.DB
	ttl   time.Duration
	clock func() time.Time
}

type Option func(*Store)

// WithTTL makes sets older than ttl invisible to Page. Zero disables
// expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// Open opens or creates the store at path and migrates its schema.
func Open(path string, opts ...Option) (*Store, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.NewMigrator(conn, migrationsFS, "migrations").Migrate(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	s := &Store{db: conn, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func sessionKey(session string) string {
	if session == "" {
		return DefaultSession
	}
	return session
}

// Save replaces the session's set with records. Empty sets are not saved
// and leave any previous set in place.
func (s *Store) Save(ctx context.Context, session string, records []snapshot.FileRecord) error {
	if len(records) == 0 {
		return nil
	}
	session = sessionKey(session)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearSession(ctx, tx, session); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO result_sets (session, saved_at, total) VALUES (?, ?, ?)",
		session, s.clock().UnixMilli(), len(records)); err != nil {
		return fmt.Errorf("inserting result set: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO result_items (session, position, id, name, path, kind, parent_id, modified_time, mime_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var mod sql.NullInt64
		if r.ModifiedTime != nil {
			mod = sql.NullInt64{Int64: r.ModifiedTime.UnixMilli(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, session, i, r.ID, r.Name, r.Path, string(r.Kind), r.ParentID, mod, r.MimeType); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing result set: %w", err)
	}
	logger.Debugf("saved %d results for session %s", len(records), session)
	return nil
}

func (s *Store) expired(savedAt int64) bool {
	return s.ttl > 0 && s.clock().Sub(time.UnixMilli(savedAt)) > s.ttl
}

// Page returns up to limit records starting at offset.
func (s *Store) Page(ctx context.Context, session string, offset, limit int) (Page, error) {
	session = sessionKey(session)
	offset = max(offset, 0)

	var savedAt int64
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT saved_at, total FROM result_sets WHERE session = ?", session).
		Scan(&savedAt, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, fmt.Errorf("reading result set: %w", err)
	}
	if s.expired(savedAt) {
		return Page{}, ErrNotFound
	}

	page := Page{Results: []snapshot.FileRecord{}, Offset: offset, Total: total}
	if limit <= 0 {
		page.HasMore = offset < total
		return page, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, path, kind, parent_id, modified_time, mime_type
		FROM result_items WHERE session = ? AND position >= ?
		ORDER BY position LIMIT ?
	`, session, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r snapshot.FileRecord
		var kind string
		var mod sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Name, &r.Path, &kind, &r.ParentID, &mod, &r.MimeType); err != nil {
			return Page{}, fmt.Errorf("scanning result: %w", err)
		}
		r.Kind = snapshot.Kind(kind)
		if mod.Valid {
			t := time.UnixMilli(mod.Int64).UTC()
			r.ModifiedTime = &t
		}
		page.Results = append(page.Results, r)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	page.HasMore = offset+len(page.Results) < total
	return page, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func clearSession(ctx context.Context, ex execer, session string) error {
	if _, err := ex.ExecContext(ctx, "DELETE FROM result_items WHERE session = ?", session); err != nil {
		return fmt.Errorf("clearing session %s: %w", session, err)
	}
	if _, err := ex.ExecContext(ctx, "DELETE FROM result_sets WHERE session = ?", session); err != nil {
		return fmt.Errorf("clearing session %s: %w", session, err)
	}
	return nil
}

// Clear drops the session's set.
func (s *Store) Clear(ctx context.Context, session string) error {
	return clearSession(ctx, s.db, sessionKey(session))
}

// PurgeOlderThan deletes sets saved before t and returns how many went.
func (s *Store) PurgeOlderThan(ctx context.Context, t time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	cutoff := t.UnixMilli()
	if _, err := tx.ExecContext(ctx, `DELETE FROM result_items WHERE session IN
		(SELECT session FROM result_sets WHERE saved_at < ?)`, cutoff); err != nil {
		return 0, fmt.Errorf("purging result items: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM result_sets WHERE saved_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging result sets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing purge: %w", err)
	}
	if n > 0 {
		logger.Infof("purged %d expired result sets", n)
	}
	return n, nil
}
