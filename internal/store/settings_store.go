package store

import (
	"context"
	errs "errors"

	"github.com/google/uuid"

	"github.com/DaanHessen/aos-loader/internal/settings"
)

// SettingsStore owns the persisted AOS settings record.
type SettingsStore struct {
	opts Options
	key  string
}

func NewSettingsStore(opts Options, key string) *SettingsStore {
	return &SettingsStore{opts: opts, key: key}
}

// Read returns the stored record merged over the defaults. A missing or
// corrupt record reads as the defaults; only backend failures are returned.
func (s *SettingsStore) Read(ctx context.Context) (settings.Settings, error) {
	rec, _, err := s.opts.Get(ctx, s.key)
	if err != nil && !errs.Is(err, ErrCorruptRecord) {
		return settings.Defaults(), err
	}
	return settings.Merge(rec), nil
}

// SanitizeAndWrite normalizes untrusted form input into a complete record and
// replaces the stored one with it.
func (s *SettingsStore) SanitizeAndWrite(ctx context.Context, in settings.Input) (settings.Settings, error) {
	clean := settings.Sanitize(in)
	if err := s.opts.Set(ctx, s.key, settings.Encode(clean)); err != nil {
		return clean, wrap(err, "write settings")
	}
	return clean, nil
}

// Entry is one past write of the settings record.
type Entry struct {
	ID       uuid.UUID
	At       string
	Settings settings.Settings
}

// History lists up to limit past writes, newest first. A limit <= 0 lists
// every write.
func (s *SettingsStore) History(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 0 {
		limit = 0
	}
	revs, err := s.opts.Revisions(ctx, s.key, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(revs))
	for _, r := range revs {
		out = append(out, Entry{ID: r.ID, At: r.CreatedAt.UTC().Format("2006-01-02 15:04:05Z"), Settings: settings.Merge(r.Record)})
	}
	return out, nil
}
