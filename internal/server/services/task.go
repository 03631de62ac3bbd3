package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements per-user task CRUD. Every operation takes the
// caller's Identity explicitly; Get, Update and Delete go through Resolve.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Resolve loads the task and checks that id owns it. A missing or malformed
// id yields common.ErrTaskNotFound, a foreign task common.ErrTaskForbidden.
func (s *TaskService) Resolve(ctx context.Context, id models.Identity, taskID string) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, common.ErrTaskNotFound
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}

	if task.UserID != id.UserID {
		return nil, common.ErrTaskForbidden
	}

	return task, nil
}

func (s *TaskService) Create(ctx context.Context, id models.Identity, title string, description *string) (*models.Task, error) {
	task := &models.Task{
		Title:       title,
		Description: description,
		UserID:      id.UserID,
	}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// ListOwned returns only the caller's tasks, oldest first.
func (s *TaskService) ListOwned(ctx context.Context, id models.Identity) ([]models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByOwner(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id models.Identity, taskID string) (*models.Task, error) {
	return s.Resolve(ctx, id, taskID)
}

// Update writes only the non-nil fields of patch; columns the caller left
// out keep whatever is stored at write time. Owner, id and createdAt are
// never changed.
func (s *TaskService) Update(ctx context.Context, id models.Identity, taskID string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.Resolve(ctx, id, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Empty() {
		return task, nil
	}

	updated, err := s.repomanager.Tasks(s.db).Update(ctx, task.ID, patch)
	if err != nil {
		return nil, mapTaskErr(err)
	}
	return updated, nil
}

// Delete removes the task and returns it as it was before deletion.
func (s *TaskService) Delete(ctx context.Context, id models.Identity, taskID string) (*models.Task, error) {
	if _, err := s.Resolve(ctx, id, taskID); err != nil {
		return nil, err
	}

	deleted, err := s.repomanager.Tasks(s.db).Delete(ctx, taskID)
	if err != nil {
		return nil, mapTaskErr(err)
	}
	return deleted, nil
}

func mapTaskErr(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrTaskNotFound
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
