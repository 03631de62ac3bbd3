package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/client/models"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	var (
		s       models.Session
		savedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT access_token, user_id, email, full_name, saved_at FROM session WHERE id = 1`,
	).Scan(&s.AccessToken, &s.User.ID, &s.User.Email, &s.User.FullName, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	s.SavedAt = time.Unix(savedAt, 0).UTC()
	return &s, nil
}

// Save replaces any previously stored session.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	savedAt := s.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, access_token, user_id, email, full_name, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			user_id      = excluded.user_id,
			email        = excluded.email,
			full_name    = excluded.full_name,
			saved_at     = excluded.saved_at
	`, s.AccessToken, s.User.ID, s.User.Email, s.User.FullName, savedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
