package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/taskmanager/internal/client/client"
	"github.com/dmitrijs2005/taskmanager/internal/client/models"
	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient is an in-memory client.Client.
type fakeClient struct {
	token string

	users    map[string]models.User
	password map[string]string
	tasks    map[string]*models.Task

	signupCalls int
	updates     []models.TaskUpdate
	err         error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		users:    map[string]models.User{},
		password: map[string]string{},
		tasks:    map[string]*models.Task{},
	}
}

func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) Health(context.Context) error { return f.err }

func (f *fakeClient) Signup(_ context.Context, email, fullName, password string) (*models.User, error) {
	f.signupCalls++
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := models.User{ID: "u-" + email, Email: email, FullName: fullName}
	f.users[email] = u
	f.password[email] = password
	return &u, nil
}

func (f *fakeClient) Signin(_ context.Context, email, password string) (*models.SigninResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok || f.password[email] != password {
		return nil, common.ErrorInvalidCredentials
	}
	return &models.SigninResult{AccessToken: "token-for-" + u.ID, User: u}, nil
}

func (f *fakeClient) ListTasks(context.Context) ([]models.Task, error) {
	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, *t)
	}
	return out, f.err
}

func (f *fakeClient) CreateTask(_ context.Context, title string, description *string) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := &models.Task{ID: "t-" + title, Title: title, Description: description}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeClient) GetTask(_ context.Context, id string) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeClient) UpdateTask(_ context.Context, id string, upd models.TaskUpdate) (*models.Task, error) {
	f.updates = append(f.updates, upd)
	t, ok := f.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = upd.Description
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	cp := *t
	return &cp, nil
}

func (f *fakeClient) DeleteTask(_ context.Context, id string) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.tasks, id)
	return t, nil
}
