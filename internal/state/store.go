package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/rating"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS persisted_rating (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	rating      INTEGER NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS persisted_config (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	config_json TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store persists the rating scalar and the game configuration record in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region rating
// LoadRating returns the persisted rating. ErrNotFound if never saved, ErrCorrupt
// if the stored value is unreadable or negative.
func (s *Store) LoadRating() (int, error) {
	var raw any
	err := s.db.QueryRow(`SELECT rating FROM persisted_rating WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load rating: %w", err)
	}
	r, err := decodeRating(raw)
	if err != nil {
		return 0, fmt.Errorf("load rating: %w", err)
	}
	return r, nil
}

func decodeRating(raw any) (int, error) {
	r, ok := raw.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, raw)
	}
	if r < 0 {
		return 0, fmt.Errorf("%w: negative %d", ErrCorrupt, r)
	}
	return int(r), nil
}

// SaveRating upserts the rating.
func (s *Store) SaveRating(r int) error {
	if r < 0 {
		return fmt.Errorf("save rating: negative %d", r)
	}
	_, err := s.db.Exec(
		`INSERT INTO persisted_rating (id, rating, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET rating = excluded.rating, updated_at = excluded.updated_at`,
		r, s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save rating: %w", err)
	}
	return nil
}

// #endregion rating

// #region config
// LoadConfig returns the persisted game configuration. ErrNotFound if never saved,
// ErrCorrupt if it does not decode or validate.
func (s *Store) LoadConfig() (config.GameConfig, error) {
	var raw string
	err := s.db.QueryRow(`SELECT config_json FROM persisted_config WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return config.GameConfig{}, ErrNotFound
	}
	if err != nil {
		return config.GameConfig{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := decodeConfig(raw)
	if err != nil {
		return config.GameConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// decodeConfig overlays the stored JSON on the defaults and validates the result.
func decodeConfig(raw string) (config.GameConfig, error) {
	cfg := config.DefaultGameConfig()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return config.GameConfig{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := cfg.Validate(); err != nil {
		return config.GameConfig{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return cfg, nil
}

// SaveConfig validates and upserts the configuration record.
func (s *Store) SaveConfig(cfg config.GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO persisted_config (id, config_json, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET config_json = excluded.config_json, updated_at = excluded.updated_at`,
		string(data), s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// #endregion config

// #region snapshot
// Snapshot reads both records in one transaction. Missing values come back as
// defaults with a zero update time. Corrupt values also come back as defaults,
// named in Snapshot.Corrupt, the same way the session loads them.
func (s *Store) Snapshot() (Snapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	snap := Snapshot{Rating: rating.Default, Config: config.DefaultGameConfig()}
	var (
		rawRating any
		updated   string
	)
	err = tx.QueryRow(`SELECT rating, updated_at FROM persisted_rating WHERE id = 1`).Scan(&rawRating, &updated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Snapshot{}, fmt.Errorf("read rating: %w", err)
	default:
		if r, err := decodeRating(rawRating); err == nil {
			snap.Rating = r
			snap.RatingUpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		} else {
			snap.Corrupt = append(snap.Corrupt, "rating")
		}
	}

	var rawConfig string
	err = tx.QueryRow(`SELECT config_json, updated_at FROM persisted_config WHERE id = 1`).Scan(&rawConfig, &updated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Snapshot{}, fmt.Errorf("read config: %w", err)
	default:
		if cfg, err := decodeConfig(rawConfig); err == nil {
			snap.Config = cfg
			snap.ConfigUpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		} else {
			snap.Corrupt = append(snap.Corrupt, "config")
		}
	}
	return snap, nil
}

// #endregion snapshot
