package audit

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

const createEventsTable = `
CREATE TABLE IF NOT EXISTS audit_events (
	id      TEXT PRIMARY KEY,
	subject TEXT NOT NULL,
	success INTEGER NOT NULL,
	message TEXT NOT NULL,
	at      TEXT NOT NULL
)`

// SQLiteRecorder appends events to a local SQLite database. Recording is
// best-effort: a failed insert is logged, never propagated, so an audit sink
// outage cannot fail the operation it describes.
type SQLiteRecorder struct {
	db *sql.DB
}

func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createEventsTable); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteRecorder{db: db}, nil
}

func (r *SQLiteRecorder) Record(ctx context.Context, caller model.Caller, success bool, message string) {
	ev := newEvent(caller, success, message)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_events (id, subject, success, message, at) VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.Subject, ev.Success, ev.Message, ev.At.Format(eventTimeLayout))
	if err != nil {
		log.Printf("audit: failed to record event: %v", err)
	}
}

// Events returns all recorded events in insertion order.
func (r *SQLiteRecorder) Events(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subject, success, message, at FROM audit_events ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var at string
		if err := rows.Scan(&ev.ID, &ev.Subject, &ev.Success, &ev.Message, &at); err != nil {
			return nil, err
		}
		ev.At, _ = parseEventTime(at)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

const eventTimeLayout = "2006-01-02T15:04:05.000Z07:00"

func parseEventTime(s string) (time.Time, error) {
	return time.Parse(eventTimeLayout, s)
}
