// Package database is the sqlx storage layer behind the practice engine.
// It speaks SQLite (default, file under ./data) or PostgreSQL
// (DB_TYPE=postgres + DATABASE_URL).
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the database selected by DB_TYPE and initializes the
// schema.
func Connect() (*sqlx.DB, error) {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	case "sqlite":
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err = sqlx.Connect("sqlite3", filepath.Join(dataDir, "wordlearn.db"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates the tables if they don't exist.
func initializeSchema(db *sqlx.DB) error {
	serialPK := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serialPK = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				target TEXT NOT NULL,
				source TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, serialPK),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS word_practice (
				id %s,
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL REFERENCES words(id),
				stage INTEGER NOT NULL DEFAULT 0,
				next_date TIMESTAMP NOT NULL,
				deleted BOOLEAN NOT NULL DEFAULT FALSE,
				consecutive_failures INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(user_id, word_id)
			)`, serialPK),
		`
			CREATE TABLE IF NOT EXISTS word_skiplist (
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL REFERENCES words(id),
				PRIMARY KEY (user_id, word_id)
			)`,
		`
			CREATE TABLE IF NOT EXISTS today_practice (
				word_practice_id BIGINT NOT NULL REFERENCES word_practice(id),
				date TEXT NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (word_practice_id, date)
			)`,
		`
			CREATE TABLE IF NOT EXISTS current_practice (
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL REFERENCES words(id),
				position INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (user_id, word_id)
			)`,
		`
			CREATE TABLE IF NOT EXISTS current_practice_stats (
				user_id BIGINT PRIMARY KEY,
				correct INTEGER NOT NULL DEFAULT 0,
				total INTEGER NOT NULL DEFAULT 0
			)`,
		`
			CREATE TABLE IF NOT EXISTS session_word_results (
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL,
				result TEXT NOT NULL,
				old_stage INTEGER NOT NULL,
				new_stage INTEGER,
				word_source TEXT NOT NULL,
				word_target TEXT NOT NULL,
				PRIMARY KEY (user_id, word_id)
			)`,
		`
			CREATE TABLE IF NOT EXISTS practice_streaks (
				user_id BIGINT PRIMARY KEY,
				current_streak INTEGER NOT NULL DEFAULT 0,
				last_active_date TEXT
			)`,
		`
			CREATE TABLE IF NOT EXISTS reminders (
				user_id BIGINT PRIMARY KEY,
				remind_time TEXT NOT NULL,
				next_remind TIMESTAMP NOT NULL
			)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// Store implements the engine's and reminder scheduler's storage
// interfaces over sqlx. Methods are grouped by concern across the
// *_repository.go files.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open connection.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) postgres() bool {
	return s.db.DriverName() == "postgres"
}

// dayFormat is the canonical string form of a pool date.
const dayFormat = "2006-01-02"
