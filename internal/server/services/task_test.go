package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var (
	alice = models.Identity{UserID: "11111111-1111-1111-1111-111111111111", Email: "a@x.com"}
	bob   = models.Identity{UserID: "22222222-2222-2222-2222-222222222222", Email: "b@x.com"}
)

func newTaskService(t *testing.T) (*TaskService, *fakeRepoManager) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	return NewTaskService(db, rm), rm
}

func TestCreate_SetsOwnerAndDefaults(t *testing.T) {
	s, _ := newTaskService(t)

	task, err := s.Create(context.Background(), alice, "Buy milk", nil)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, task.UserID)
	assert.False(t, task.Completed)
	assert.Nil(t, task.Description)
	assert.NotEmpty(t, task.ID)
}

func TestCreate_StoreError(t *testing.T) {
	s, rm := newTaskService(t)
	rm.t.err = errors.New("db down")

	_, err := s.Create(context.Background(), alice, "x", nil)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestListOwned_OnlyOwnAndOrdered(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	a1, _ := s.Create(ctx, alice, "a1", nil)
	_, _ = s.Create(ctx, bob, "b1", nil)
	a2, _ := s.Create(ctx, alice, "a2", ptr("d"))

	got, err := s.ListOwned(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a1.ID, got[0].ID)
	assert.Equal(t, a2.ID, got[1].ID)
	for _, task := range got {
		assert.Equal(t, alice.UserID, task.UserID)
	}
}

func TestListOwned_EmptyMarshalsAsArray(t *testing.T) {
	s, _ := newTaskService(t)

	got, err := s.ListOwned(context.Background(), alice)
	require.NoError(t, err)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestResolve(t *testing.T) {
	s, rm := newTaskService(t)
	ctx := context.Background()
	task, err := s.Create(ctx, alice, "mine", nil)
	require.NoError(t, err)

	t.Run("owner", func(t *testing.T) {
		got, err := s.Resolve(ctx, alice, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("other user", func(t *testing.T) {
		_, err := s.Resolve(ctx, bob, task.ID)
		assert.Equal(t, common.ErrTaskForbidden, err)
		assert.ErrorIs(t, err, common.ErrorForbidden)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Resolve(ctx, alice, uuid.NewString())
		assert.Equal(t, common.ErrTaskNotFound, err)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := s.Resolve(ctx, alice, "not-a-uuid")
		assert.Equal(t, common.ErrTaskNotFound, err)
	})

	t.Run("store error", func(t *testing.T) {
		rm.t.err = errors.New("db down")
		defer func() { rm.t.err = nil }()
		_, err := s.Resolve(ctx, alice, task.ID)
		assert.ErrorIs(t, err, common.ErrorInternal)
	})
}

func TestUpdate(t *testing.T) {
	s, rm := newTaskService(t)
	ctx := context.Background()
	task, err := s.Create(ctx, alice, "Buy milk", ptr("2 litres"))
	require.NoError(t, err)

	t.Run("completed only", func(t *testing.T) {
		got, err := s.Update(ctx, alice, task.ID, models.TaskPatch{Completed: ptr(true)})
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, "2 litres", *got.Description)
		assert.Equal(t, alice.UserID, got.UserID)
		assert.True(t, got.UpdatedAt.After(task.UpdatedAt))
	})

	t.Run("omitted fields keep the stored value", func(t *testing.T) {
		rm.t.afterGet = func(row *models.Task) { row.Title = "renamed concurrently" }
		defer func() { rm.t.afterGet = nil }()

		got, err := s.Update(ctx, alice, task.ID, models.TaskPatch{Completed: ptr(true)})
		require.NoError(t, err)
		assert.Equal(t, "renamed concurrently", got.Title)
		assert.True(t, got.Completed)

		rm.t.afterGet = nil
		_, err = s.Update(ctx, alice, task.ID, models.TaskPatch{Title: ptr("Buy milk")})
		require.NoError(t, err)
	})

	t.Run("forbidden leaves task untouched", func(t *testing.T) {
		_, err := s.Update(ctx, bob, task.ID, models.TaskPatch{Title: ptr("hacked")})
		assert.ErrorIs(t, err, common.ErrorForbidden)

		got, err := s.Get(ctx, alice, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
	})

	t.Run("vanished between check and write", func(t *testing.T) {
		rm.t.updateErr = common.ErrorNotFound
		defer func() { rm.t.updateErr = nil }()
		_, err := s.Update(ctx, alice, task.ID, models.TaskPatch{Title: ptr("x")})
		assert.Equal(t, common.ErrTaskNotFound, err)
	})

	t.Run("empty patch skips the write", func(t *testing.T) {
		rm.t.updateErr = errors.New("must not be called")
		defer func() { rm.t.updateErr = nil }()
		got, err := s.Update(ctx, alice, task.ID, models.TaskPatch{})
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("empty patch still checks ownership", func(t *testing.T) {
		_, err := s.Update(ctx, bob, task.ID, models.TaskPatch{})
		assert.ErrorIs(t, err, common.ErrorForbidden)
	})

	t.Run("write error", func(t *testing.T) {
		rm.t.updateErr = errors.New("db down")
		defer func() { rm.t.updateErr = nil }()
		_, err := s.Update(ctx, alice, task.ID, models.TaskPatch{Title: ptr("x")})
		assert.ErrorIs(t, err, common.ErrorInternal)
	})
}

func TestDelete(t *testing.T) {
	s, rm := newTaskService(t)
	ctx := context.Background()
	task, err := s.Create(ctx, alice, "doomed", nil)
	require.NoError(t, err)

	_, err = s.Delete(ctx, bob, task.ID)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	rm.t.deleteErr = errors.New("db down")
	_, err = s.Delete(ctx, alice, task.ID)
	assert.ErrorIs(t, err, common.ErrorInternal)
	rm.t.deleteErr = nil

	got, err := s.Delete(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "doomed", got.Title)

	_, err = s.Get(ctx, alice, task.ID)
	assert.Equal(t, common.ErrTaskNotFound, err)

	_, err = s.Delete(ctx, alice, task.ID)
	assert.Equal(t, common.ErrTaskNotFound, err)
}

// Two users, one task each: neither can see or touch the other's task.
func TestOwnershipScenario(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	users := NewUserService(db, rm, &fakeHasher{}, fakeIssuer{})
	tasks := NewTaskService(db, rm)
	ctx := context.Background()

	ua, err := users.Signup(ctx, "a@x.com", "Alice A", "Passw0rd!")
	require.NoError(t, err)
	ub, err := users.Signup(ctx, "b@x.com", "Bob B", "Passw0rd!")
	require.NoError(t, err)

	ida := models.Identity{UserID: ua.ID, Email: ua.Email}
	idb := models.Identity{UserID: ub.ID, Email: ub.Email}

	ta, err := tasks.Create(ctx, ida, "alice's", nil)
	require.NoError(t, err)
	tb, err := tasks.Create(ctx, idb, "bob's", nil)
	require.NoError(t, err)

	listA, err := tasks.ListOwned(ctx, ida)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, ta.ID, listA[0].ID)

	_, err = tasks.Get(ctx, idb, ta.ID)
	assert.ErrorIs(t, err, common.ErrorForbidden)
	_, err = tasks.Update(ctx, idb, ta.ID, models.TaskPatch{Completed: ptr(true)})
	assert.ErrorIs(t, err, common.ErrorForbidden)
	_, err = tasks.Delete(ctx, idb, ta.ID)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	got, err := tasks.Get(ctx, idb, tb.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob's", got.Title)

	stillThere, err := tasks.Get(ctx, ida, ta.ID)
	require.NoError(t, err)
	assert.False(t, stillThere.Completed)
}
