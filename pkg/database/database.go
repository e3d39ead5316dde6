package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/htmltagllm/llmlaunch/pkg/config"

	_ "github.com/lib/pq"
)

var DebugLog func(string, ...interface{})

type DB struct {
	conn    *sql.DB
	enabled bool
}

type InvocationRecord struct {
	Model      string
	MaxLength  string
	Dataset    string
	Mode       string
	LaunchedAt time.Time
}

const DBName = "llmlaunch_history"

func New(cfg *config.Database) (*DB, error) {
	db := &DB{
		enabled: cfg.Enabled,
	}

	if !cfg.Enabled {
		if DebugLog != nil {
			DebugLog("invocation history disabled")
		}
		return db, nil
	}

	postgresConnStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password)

	postgresConn, err := sql.Open("postgres", postgresConnStr)
	if err != nil {
		return db, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer postgresConn.Close()

	if err := postgresConn.Ping(); err != nil {
		return db, fmt.Errorf("failed to ping postgres: %w", err)
	}

	var exists bool
	err = postgresConn.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", DBName).Scan(&exists)
	if err != nil {
		return db, fmt.Errorf("failed to check database existence: %w", err)
	}

	if !exists {
		_, err = postgresConn.Exec(fmt.Sprintf("CREATE DATABASE %s", DBName))
		if err != nil {
			return db, fmt.Errorf("failed to create database: %w", err)
		}
		if DebugLog != nil {
			DebugLog("database %s created", DBName)
		}
	}

	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, DBName)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return db, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return db, fmt.Errorf("failed to ping database: %w", err)
	}

	db.conn = conn

	if err := db.initSchema(); err != nil {
		return db, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) initSchema() error {
	if !db.enabled || db.conn == nil {
		return nil
	}

	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id SERIAL PRIMARY KEY,
		model VARCHAR(255) NOT NULL,
		max_length VARCHAR(32) NOT NULL,
		dataset TEXT NOT NULL,
		mode VARCHAR(16) NOT NULL,
		launched_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_invocations_mode ON invocations(mode);
	CREATE INDEX IF NOT EXISTS idx_invocations_launched_at ON invocations(launched_at);
	`

	_, err := db.conn.Exec(schema)
	return err
}

func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

func (db *DB) IsEnabled() bool {
	return db.enabled && db.conn != nil
}

func (db *DB) RecordInvocation(rec InvocationRecord) error {
	if !db.IsEnabled() {
		return nil
	}

	if DebugLog != nil {
		DebugLog("recording %s invocation of model %s", rec.Mode, rec.Model)
	}

	_, err := db.conn.Exec(`
		INSERT INTO invocations (model, max_length, dataset, mode, launched_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, rec.Model, rec.MaxLength, rec.Dataset, rec.Mode)

	return err
}

func (db *DB) QueryInvocations(mode string, limit int) ([]InvocationRecord, error) {
	if !db.IsEnabled() {
		return nil, fmt.Errorf("database is not enabled")
	}

	query := `
		SELECT model, max_length, dataset, mode, launched_at
		FROM invocations
	`
	var args []interface{}

	if mode != "" {
		query += " WHERE mode = $1"
		args = append(args, mode)
	}

	query += " ORDER BY launched_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []InvocationRecord
	for rows.Next() {
		var r InvocationRecord
		if err := rows.Scan(&r.Model, &r.MaxLength, &r.Dataset, &r.Mode, &r.LaunchedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, nil
}
