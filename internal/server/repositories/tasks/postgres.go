// Package tasks provides task persistence: a PostgreSQL-backed repository
// and an in-memory one behind the same interface.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/dbx"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (id, title, description, status, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.CreatedBy, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query :=
		`SELECT id, title, description, status, created_by, created_at, updated_at FROM tasks
		 WHERE id = $1
		 `
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// ListByUser returns the user's tasks, most recently created first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query :=
		`SELECT id, title, description, status, created_by, created_at, updated_at FROM tasks
		 WHERE created_by = $1
		 ORDER BY created_at DESC
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Status, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query :=
		`UPDATE tasks SET title = $2, description = $3, status = $4, updated_at = $5
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the task with the given id. A missing id is reported as
// success=false, not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
