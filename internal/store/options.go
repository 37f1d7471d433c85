package store

import (
	"context"
	"database/sql"
	"encoding/json"
	errs "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DaanHessen/aos-loader/internal/settings"
)

// ErrCorruptRecord marks a stored value that is not a JSON object.
var ErrCorruptRecord = errs.New("corrupt option record")

// Options is a named key-value option store.
type Options interface {
	// Get returns the record stored under name; found is false when none was
	// ever written.
	Get(ctx context.Context, name string) (rec settings.Record, found bool, err error)
	// Set replaces the whole record and appends a revision.
	Set(ctx context.Context, name string, rec settings.Record) error
	// Revisions lists the newest writes first. A limit <= 0 lists all.
	Revisions(ctx context.Context, name string, limit int) ([]Revision, error)
}

// Revision is one historical write of an option.
type Revision struct {
	ID        uuid.UUID
	Name      string
	Record    settings.Record
	CreatedAt time.Time
}

// OptionRepo stores options in postgres.
type OptionRepo struct{ db *DB }

func NewOptionRepo(db *DB) *OptionRepo { return &OptionRepo{db: db} }

func (r *OptionRepo) Get(ctx context.Context, name string) (settings.Record, bool, error) {
	row := r.db.gorm.WithContext(ctx).Raw(`SELECT value FROM options WHERE name = ?`, name).Row()
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, wrap(err, "get option")
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, true, err
	}
	return rec, true, nil
}

func (r *OptionRepo) Set(ctx context.Context, name string, rec settings.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return wrap(err, "encode option")
	}
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO options(name, value, updated_at) VALUES (?,?,now())
	ON CONFLICT (name) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`, name, string(b)).Error; err != nil {
			return wrap(err, "upsert option")
		}
		if err := tx.Exec(`INSERT INTO option_revisions(id, name, value) VALUES (?,?,?)`, uuid.New(), name, string(b)).Error; err != nil {
			return wrap(err, "insert option revision")
		}
		return nil
	})
}

func revisionsQuery(name string, limit int) (string, []any) {
	q := `SELECT id, value, created_at FROM option_revisions WHERE name = ? ORDER BY created_at DESC`
	if limit <= 0 {
		return q, []any{name}
	}
	return q + ` LIMIT ?`, []any{name, limit}
}

func (r *OptionRepo) Revisions(ctx context.Context, name string, limit int) ([]Revision, error) {
	q, args := revisionsQuery(name, limit)
	rows, err := r.db.gorm.WithContext(ctx).Raw(q, args...).Rows()
	if err != nil {
		return nil, wrap(err, "list option revisions")
	}
	defer rows.Close()
	var out []Revision
	for rows.Next() {
		var (
			rev Revision
			raw []byte
		)
		if err := rows.Scan(&rev.ID, &raw, &rev.CreatedAt); err != nil {
			return nil, wrap(err, "scan option revision")
		}
		rev.Name = name
		// A corrupt revision still shows up in the history, as defaults.
		rev.Record, _ = decodeRecord(raw)
		out = append(out, rev)
	}
	return out, wrap(rows.Err(), "iterate option revisions")
}

func decodeRecord(raw []byte) (settings.Record, error) {
	var rec settings.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, ErrCorruptRecord
	}
	return rec, nil
}
