// Package session persists the signed-in session of the CLI in the local
// SQLite database. At most one session is stored.
package session

import (
	"context"

	"github.com/dmitrijs2005/taskmanager/internal/client/models"
)

type Repository interface {
	// Load returns the stored session, or (nil, nil) when nobody is signed in.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
