// Package store provides SQLite persistence for user signals and content
// popularity.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/signals"
)

// maxPreferences bounds the history loaded per user.
const maxPreferences = 500

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so all connections in the pool see the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db, now: time.Now}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		content_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS interests (
		user_id TEXT NOT NULL,
		topic TEXT NOT NULL,
		weight REAL NOT NULL DEFAULT 1,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, topic)
	);

	CREATE TABLE IF NOT EXISTS content_filters (
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		blocked INTEGER NOT NULL DEFAULT 1,
		reason TEXT NOT NULL DEFAULT '',
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, kind)
	);

	CREATE TABLE IF NOT EXISTS content_stats (
		kind TEXT NOT NULL,
		content_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		views INTEGER NOT NULL DEFAULT 0,
		likes INTEGER NOT NULL DEFAULT 0,
		saves INTEGER NOT NULL DEFAULT 0,
		shares INTEGER NOT NULL DEFAULT 0,
		dislikes INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (kind, content_id)
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// statColumn maps an action to its content_stats counter.
var statColumn = map[signals.Action]string{
	signals.ActionView:    "views",
	signals.ActionLike:    "likes",
	signals.ActionSave:    "saves",
	signals.ActionShare:   "shares",
	signals.ActionDislike: "dislikes",
}

// RecordAction stores one user action and bumps the item's counters.
// Anonymous actions (empty userID) only count toward popularity.
// Thread-safe: acquires write lock.
func (s *Store) RecordAction(ctx context.Context, userID string, p signals.Preference) error {
	action, ok := signals.ParseAction(string(p.Action))
	if !ok {
		return fmt.Errorf("record action: unknown action %q", p.Action)
	}
	p.Action = action
	if p.At.IsZero() {
		p.At = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	defer tx.Rollback()

	if userID != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO interactions (user_id, kind, category, action, content_id, title, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, userID, string(p.Kind), p.Category, string(p.Action), p.ContentID, p.Title, p.At)
		if err != nil {
			return fmt.Errorf("record action: insert interaction: %w", err)
		}
	}

	if col, ok := statColumn[p.Action]; ok && p.ContentID != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO content_stats (kind, content_id, title, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (kind, content_id) DO UPDATE SET
				title = CASE WHEN excluded.title != '' THEN excluded.title ELSE content_stats.title END,
				updated_at = excluded.updated_at
		`, string(p.Kind), p.ContentID, p.Title, p.At)
		if err != nil {
			return fmt.Errorf("record action: upsert stats: %w", err)
		}
		// col comes from statColumn, never from input.
		_, err = tx.ExecContext(ctx,
			"UPDATE content_stats SET "+col+" = "+col+" + 1 WHERE kind = ? AND content_id = ?",
			string(p.Kind), p.ContentID)
		if err != nil {
			return fmt.Errorf("record action: bump %s: %w", col, err)
		}
	}

	return tx.Commit()
}

// Preferences returns the user's most recent reactions, newest first. Views
// are counted by ViewCounts instead.
// Thread-safe: acquires read lock.
func (s *Store) Preferences(ctx context.Context, userID string) ([]signals.Preference, error) {
	if userID == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, category, action, content_id, title, created_at
		FROM interactions
		WHERE user_id = ? AND action != 'view'
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, maxPreferences)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []signals.Preference
	for rows.Next() {
		var p signals.Preference
		var kind, action string
		if err := rows.Scan(&kind, &p.Category, &action, &p.ContentID, &p.Title, &p.At); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		p.Kind = content.Kind(kind)
		p.Action = signals.Action(action)
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// ViewCounts returns how many items of each kind the user was shown.
// Thread-safe: acquires read lock.
func (s *Store) ViewCounts(ctx context.Context, userID string) (map[content.Kind]int, error) {
	if userID == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) FROM interactions
		WHERE user_id = ? AND action = 'view'
		GROUP BY kind
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query views: %w", err)
	}
	defer rows.Close()

	out := make(map[content.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan views: %w", err)
		}
		out[content.Kind(kind)] = n
	}
	return out, rows.Err()
}

// SetInterest adds or reweights a followed topic.
// Thread-safe: acquires write lock.
func (s *Store) SetInterest(ctx context.Context, userID, topic string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interests (user_id, topic, weight, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, topic) DO UPDATE SET weight = excluded.weight, updated_at = excluded.updated_at
	`, userID, topic, weight, s.now())
	if err != nil {
		return fmt.Errorf("set interest: %w", err)
	}
	return nil
}

// Interests returns the user's topics, heaviest first.
// Thread-safe: acquires read lock.
func (s *Store) Interests(ctx context.Context, userID string) ([]signals.Interest, error) {
	if userID == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT topic, weight FROM interests WHERE user_id = ? ORDER BY weight DESC, topic
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query interests: %w", err)
	}
	defer rows.Close()

	var out []signals.Interest
	for rows.Next() {
		var in signals.Interest
		if err := rows.Scan(&in.Topic, &in.Weight); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// SetFilter blocks or unblocks a kind for the user.
// Thread-safe: acquires write lock.
func (s *Store) SetFilter(ctx context.Context, userID string, kind content.Kind, blocked bool, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_filters (user_id, kind, blocked, reason, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, kind) DO UPDATE SET
			blocked = excluded.blocked, reason = excluded.reason, updated_at = excluded.updated_at
	`, userID, string(kind), boolToInt(blocked), reason, s.now())
	if err != nil {
		return fmt.Errorf("set filter: %w", err)
	}
	return nil
}

// ContentFilters returns the user's per-kind rules.
// Thread-safe: acquires read lock.
func (s *Store) ContentFilters(ctx context.Context, userID string) ([]signals.Filter, error) {
	if userID == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, blocked, reason FROM content_filters WHERE user_id = ? ORDER BY kind
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query filters: %w", err)
	}
	defer rows.Close()

	var out []signals.Filter
	for rows.Next() {
		var f signals.Filter
		var kind string
		var blocked int
		if err := rows.Scan(&kind, &blocked, &f.Reason); err != nil {
			return nil, fmt.Errorf("scan filter: %w", err)
		}
		f.Kind = content.Kind(kind)
		f.Blocked = blocked != 0
		out = append(out, f)
	}
	return out, rows.Err()
}

// PopularContent returns the items of a kind with the best engagement per
// view. Engagement weighs likes, saves and shares against dislikes; only
// items with positive engagement qualify. Returned items carry ID, Kind,
// Title and Views.
// Thread-safe: acquires read lock.
func (s *Store) PopularContent(ctx context.Context, kind content.Kind, limit int) ([]content.Item, error) {
	if limit <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT content_id, title, views,
			(likes + saves * 1.5 + shares * 1.2 - dislikes) AS engagement
		FROM content_stats
		WHERE kind = ? AND (likes + saves * 1.5 + shares * 1.2 - dislikes) > 0
		ORDER BY (likes + saves * 1.5 + shares * 1.2 - dislikes) / MAX(views, 1) DESC,
			engagement DESC, content_id
		LIMIT ?
	`, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query popular: %w", err)
	}
	defer rows.Close()

	var out []content.Item
	for rows.Next() {
		item := content.Item{Kind: kind}
		var engagement float64
		if err := rows.Scan(&item.ID, &item.Title, &item.Views, &engagement); err != nil {
			return nil, fmt.Errorf("scan popular: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// boolToInt converts a bool to an int for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
