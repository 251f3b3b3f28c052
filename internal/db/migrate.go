package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'planned',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,
	`CREATE INDEX IF NOT EXISTS idx_projects_start ON projects(start_date)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'planned',
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		progress      INTEGER NOT NULL DEFAULT 0
		              CHECK(progress BETWEEN 0 AND 100),
		critical_path INTEGER NOT NULL DEFAULT 0,
		order_index   INTEGER NOT NULL DEFAULT 0,
		assignee      TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	// Budget arrived after the first release.
	`ALTER TABLE projects ADD COLUMN budget REAL NOT NULL DEFAULT 0`,
}
