// Package journal records the events of committed ledger operations in a
// SQLite database, so they can be listed after the fact.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/etnz/assets"
	"github.com/etnz/assets/journal/migrations"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

const logModule = "journal"

// Journal is a SQLite-backed event log.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is a recorded event.
type Entry struct {
	// Seq orders entries in recording order.
	Seq        int64
	ID         uuid.UUID
	RecordedAt time.Time
	Event      assets.Event
}

// Open opens (or creates) the journal database at path and applies the
// embedded migrations.
func Open(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logrus.WithFields(logrus.Fields{"module": logModule, "path": path}).Debug("opened journal")
	return &Journal{db: db, now: time.Now}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append records events, in order, in a single transaction and returns the
// entries created.
func (j *Journal) Append(ctx context.Context, events ...assets.Event) ([]Entry, error) {
	if len(events) == 0 {
		return nil, nil
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	recordedAt := j.now().UTC()
	entries := make([]Entry, 0, len(events))
	for _, ev := range events {
		payload, err := assets.MarshalEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("encode %s event: %w", ev.Kind(), err)
		}
		id := uuid.New()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO events (id, recorded_at, kind, asset_id, payload) VALUES (?, ?, ?, ?, ?)`,
			id.String(), recordedAt.UnixMilli(), string(ev.Kind()), int64(ev.AssetID()), string(payload),
		)
		if err != nil {
			return nil, fmt.Errorf("insert %s event: %w", ev.Kind(), err)
		}
		seq, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert %s event: %w", ev.Kind(), err)
		}
		entries = append(entries, Entry{Seq: seq, ID: id, RecordedAt: time.UnixMilli(recordedAt.UnixMilli()).UTC(), Event: ev})
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit append: %w", err)
	}
	return entries, nil
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	Asset *assets.AssetID
	Kind  assets.EventKind
	// After skips entries up to this sequence number.
	After int64
	Limit int
}

// List returns the entries matching f in recording order.
func (j *Journal) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := `SELECT seq, id, recorded_at, payload FROM events WHERE seq > ?`
	args := []any{f.After}
	if f.Asset != nil {
		query += ` AND asset_id = ?`
		args = append(args, int64(*f.Asset))
	}
	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(f.Kind))
	}
	query += ` ORDER BY seq`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			id         string
			recordedAt int64
			payload    string
		)
		if err := rows.Scan(&e.Seq, &id, &recordedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("event %d: %w", e.Seq, err)
		}
		e.RecordedAt = time.UnixMilli(recordedAt).UTC()
		if e.Event, err = assets.UnmarshalEvent([]byte(payload)); err != nil {
			return nil, fmt.Errorf("event %d: %w", e.Seq, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return entries, nil
}

// Sink returns an assets.EventSink recording every event in j. Failures
// are logged, the ledger operation being already committed.
func (j *Journal) Sink(ctx context.Context) assets.EventSink {
	return sink{j: j, ctx: ctx}
}

type sink struct {
	j   *Journal
	ctx context.Context
}

func (s sink) Emit(ev assets.Event) {
	if _, err := s.j.Append(s.ctx, ev); err != nil {
		logrus.WithFields(logrus.Fields{"module": logModule, "event": ev.Kind(), "asset": ev.AssetID()}).WithError(err).Warn("could not journal event")
	}
}
