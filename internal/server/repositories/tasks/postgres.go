// Package tasks stores tasks in PostgreSQL. Ownership is not checked here;
// callers resolve the owner before mutating.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/google/uuid"
)

const taskColumns = `id, title, description, completed, user_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var newID = uuid.NewString

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var desc sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return t, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func wrap(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (id, title, description, completed, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		newID(), task.Title, nullable(task.Description), task.Completed, task.UserID))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// ListByOwner returns the user's tasks oldest first. The slice is never nil.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(err)
	}
	return t, nil
}

// Update writes only the non-nil fields of patch and bumps updated_at.
// A row that no longer exists yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	set := make([]string, 0, 4)
	args := []any{id}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if patch.Completed != nil {
		args = append(args, *patch.Completed)
		set = append(set, fmt.Sprintf("completed = $%d", len(args)))
	}
	set = append(set, "updated_at = now()")

	query :=
		`UPDATE tasks
		 SET ` + strings.Join(set, ", ") + `
		 WHERE id = $1
		 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, wrap(err)
	}
	return t, nil
}

// Delete removes the task and returns the row as it was.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.Task, error) {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrap(err)
	}
	return t, nil
}
