package services

import (
	"context"

	"github.com/dmitrijs2005/taskmanager/internal/client/client"
	"github.com/dmitrijs2005/taskmanager/internal/client/models"
)

// TaskService wraps the task endpoints for the CLI. The API client must
// already carry the access token of the current session.
type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	Add(ctx context.Context, title string, description *string) (*models.Task, error)
	Show(ctx context.Context, id string) (*models.Task, error)
	Edit(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error)
	Toggle(ctx context.Context, id string) (*models.Task, error)
	Delete(ctx context.Context, id string) (*models.Task, error)
}

type taskService struct {
	client client.Client
}

func NewTaskService(c client.Client) TaskService {
	return &taskService{client: c}
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	return s.client.ListTasks(ctx)
}

func (s *taskService) Add(ctx context.Context, title string, description *string) (*models.Task, error) {
	return s.client.CreateTask(ctx, title, description)
}

func (s *taskService) Show(ctx context.Context, id string) (*models.Task, error) {
	return s.client.GetTask(ctx, id)
}

func (s *taskService) Edit(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error) {
	return s.client.UpdateTask(ctx, id, upd)
}

// Toggle flips the completed flag of the task, reading its current state
// first.
func (s *taskService) Toggle(ctx context.Context, id string) (*models.Task, error) {
	t, err := s.client.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	completed := !t.Completed
	return s.client.UpdateTask(ctx, id, models.TaskUpdate{Completed: &completed})
}

func (s *taskService) Delete(ctx context.Context, id string) (*models.Task, error) {
	return s.client.DeleteTask(ctx, id)
}
