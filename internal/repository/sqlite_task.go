package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, name, status, start_date, end_date, progress, critical_path,
	order_index, assignee, description, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Name,
		t.Status.String(),
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.Progress,
		boolToInt(t.CriticalPath),
		t.OrderIndex,
		t.Assignee,
		t.Description,
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY order_index, created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, status = ?, start_date = ?, end_date = ?, progress = ?,
		critical_path = ?, order_index = ?, assignee = ?, description = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Status.String(),
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.Progress,
		boolToInt(t.CriticalPath),
		t.OrderIndex,
		t.Assignee,
		t.Description,
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status, start, end, created, updated string
	var critical int

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &status,
		&start, &end,
		&t.Progress, &critical,
		&t.OrderIndex, &t.Assignee, &t.Description,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.ParseStatus(status)
	t.CriticalPath = intToBool(critical)
	if err := parseDate(&t.StartDate, start, "start_date"); err != nil {
		return nil, err
	}
	if err := parseDate(&t.EndDate, end, "end_date"); err != nil {
		return nil, err
	}
	if err := parseTimestamp(&t.CreatedAt, created, "created_at"); err != nil {
		return nil, err
	}
	if err := parseTimestamp(&t.UpdatedAt, updated, "updated_at"); err != nil {
		return nil, err
	}
	return &t, nil
}
