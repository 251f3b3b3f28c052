package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableColumns(t *testing.T, db *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		require.NoError(t, rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk))
		cols[name] = true
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"projects", "tasks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_projects_short_id", "idx_projects_start", "idx_tasks_project"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// WAL only applies to file databases; in-memory reports "memory".
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_Columns(t *testing.T) {
	db := openTestDB(t)

	projectCols := tableColumns(t, db, "projects")
	for _, c := range []string{"id", "short_id", "name", "status", "start_date", "end_date", "location", "budget"} {
		assert.True(t, projectCols[c], "projects.%s should exist", c)
	}

	taskCols := tableColumns(t, db, "tasks")
	for _, c := range []string{"project_id", "progress", "critical_path", "order_index", "assignee", "description"} {
		assert.True(t, taskCols[c], "tasks.%s should exist", c)
	}
}

func TestMigrate_ProgressCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, name, start_date, end_date, created_at, updated_at)
		VALUES ('p1', 'P', '2024-01-01', '2024-02-01', 'now', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, project_id, name, start_date, end_date, progress, created_at, updated_at)
		VALUES ('t1', 'p1', 'T', '2024-01-01', '2024-01-10', 140, 'now', 'now')`)
	require.Error(t, err)
}

func TestMigrate_CascadeDeletesTasks(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, name, start_date, end_date, created_at, updated_at)
		VALUES ('p1', 'P', '2024-01-01', '2024-02-01', 'now', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, project_id, name, start_date, end_date, created_at, updated_at)
		VALUES ('t1', 'p1', 'T', '2024-01-01', '2024-01-10', 'now', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Equal(t, 0, n)
}
