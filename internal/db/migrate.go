package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Replayed ALTER TABLE ... ADD COLUMN statements fail once the
			// column exists.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS project_statuses (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL COLLATE NOCASE UNIQUE,
		phase       TEXT NOT NULL DEFAULT ''
		            CHECK(phase IN ('','ambiente','poc','mvp','desenvolvimento','producao','homologacao','testes')),
		is_final    INTEGER NOT NULL DEFAULT 0 CHECK(is_final IN (0,1)),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status_id   TEXT REFERENCES project_statuses(id) ON DELETE SET NULL,
		priority    TEXT NOT NULL DEFAULT ''
		            CHECK(priority IN ('','low','medium','high','urgent')),
		progress    INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		start_date  TEXT,
		deadline    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'pending'
		           CHECK(status IN ('pending','in_progress','completed','blocked')),
		deadline   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS client_reports (
		id         TEXT PRIMARY KEY,
		project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		summary    TEXT NOT NULL DEFAULT '',
		highlights TEXT NOT NULL DEFAULT '[]',
		risks      TEXT NOT NULL DEFAULT '[]',
		source     TEXT NOT NULL CHECK(source IN ('llm','deterministic')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_client_reports_project ON client_reports(project_id)`,

	// Columns added after the first release.
	`ALTER TABLE projects ADD COLUMN client TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE tasks ADD COLUMN assignee TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client)`,
}
