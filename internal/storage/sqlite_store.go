package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/studyping/internal/model"
)

const (
	keyTasks   = "studyping.tasks.v1"
	keyProfile = "studyping.profile.v1"
	keyStreak  = "studyping.streak.v1"
)

// SQLiteStore keeps each record as a JSON document in a single key/value
// table. Saves replace the whole document, matching the full-overwrite
// persistence contract.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadTasks() ([]model.Task, error) {
	var records []taskRecord
	if err := s.load(keyTasks, &records); err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(records))
	for _, r := range records {
		out = append(out, fromTaskRecord(r))
	}
	return out, nil
}

func (s *SQLiteStore) SaveTasks(tasks []model.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toTaskRecord(t))
	}
	return s.save(keyTasks, records)
}

func (s *SQLiteStore) LoadProfile() (model.Profile, error) {
	var record profileRecord
	if err := s.load(keyProfile, &record); err != nil {
		return model.Profile{}, err
	}
	return fromProfileRecord(record), nil
}

func (s *SQLiteStore) SaveProfile(p model.Profile) error {
	return s.save(keyProfile, toProfileRecord(p))
}

func (s *SQLiteStore) LoadStreak() (model.StreakState, error) {
	var record streakRecord
	if err := s.load(keyStreak, &record); err != nil {
		return model.StreakState{}, err
	}
	return fromStreakRecord(record), nil
}

func (s *SQLiteStore) SaveStreak(state model.StreakState) error {
	return s.save(keyStreak, toStreakRecord(state))
}

func (s *SQLiteStore) load(key string, dest any) error {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRecord
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, raw, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
