package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL COLLATE NOCASE UNIQUE,
					color TEXT NOT NULL DEFAULT '',
					is_default INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS income_sources (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL COLLATE NOCASE UNIQUE,
					color TEXT NOT NULL DEFAULT '',
					is_default INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					seq INTEGER NOT NULL UNIQUE,
					description TEXT NOT NULL,
					amount REAL NOT NULL,
					date DATETIME NOT NULL,
					type TEXT NOT NULL,
					category_id TEXT NOT NULL,
					category_name TEXT NOT NULL,
					category_color TEXT NOT NULL DEFAULT '',
					source_id TEXT,
					source_name TEXT,
					source_color TEXT,
					ai_confidence REAL
				)`,
				`CREATE INDEX idx_transactions_seq ON transactions(seq)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,

				`CREATE TABLE IF NOT EXISTS budgets (
					category_id TEXT PRIMARY KEY,
					amount REAL NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS goals (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					target_amount REAL NOT NULL,
					current_amount REAL NOT NULL DEFAULT 0,
					deadline DATETIME NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Correction ledger for classifier feedback",
		Up: func(tx *sql.Tx) error {
			// pos is the recency order: upserts delete the old row and
			// append, so higher pos always means more recent.
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS corrections (
					pos INTEGER PRIMARY KEY AUTOINCREMENT,
					description TEXT NOT NULL UNIQUE,
					category_id TEXT NOT NULL
				)
			`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Seed default categories and income sources",
		Up: func(tx *sql.Tx) error {
			type seed struct {
				id    string
				name  string
				color string
			}

			defaultCategories := []seed{
				{"cat-groceries", "Groceries", "#FFB86C"},
				{"cat-utilities", "Utilities", "#FF79C6"},
				{"cat-transport", "Transport", "#8BE9FD"},
				{"cat-entertainment", "Entertainment", "#50FA7B"},
				{"cat-health", "Health", "#FF5555"},
				{"cat-shopping", "Shopping", "#BD93F9"},
				{"cat-income", "Income", "#F1FA8C"},
				{"cat-other", "Other", "#6272A4"},
			}
			for _, c := range defaultCategories {
				_, err := tx.Exec(
					`INSERT OR IGNORE INTO categories (id, name, color, is_default) VALUES (?, ?, ?, 1)`,
					c.id, c.name, c.color)
				if err != nil {
					return fmt.Errorf("failed to seed category %q: %w", c.name, err)
				}
			}

			defaultSources := []seed{
				{"src-salary", "Salary", "#50FA7B"},
				{"src-freelance", "Freelance", "#8BE9FD"},
				{"src-investments", "Investments", "#BD93F9"},
				{"src-other", "Other", "#F1FA8C"},
			}
			for _, s := range defaultSources {
				_, err := tx.Exec(
					`INSERT OR IGNORE INTO income_sources (id, name, color, is_default) VALUES (?, ?, ?, 1)`,
					s.id, s.name, s.color)
				if err != nil {
					return fmt.Errorf("failed to seed income source %q: %w", s.name, err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	current, err := s.currentSchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	final, err := s.currentSchemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema version mismatch: have %d, expected %d", final, ExpectedSchemaVersion)
	}

	return nil
}

func (s *SQLiteStorage) currentSchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_versions`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
