package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestTaskPatch_Apply(t *testing.T) {
	base := func() *Task {
		return &Task{ID: "t1", Title: "Buy milk", Description: ptr("2 litres"), UserID: "u1"}
	}

	t.Run("completed only", func(t *testing.T) {
		task := base()
		TaskPatch{Completed: ptr(true)}.Apply(task)
		assert.True(t, task.Completed)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2 litres", *task.Description)
	})

	t.Run("title and description", func(t *testing.T) {
		task := base()
		TaskPatch{Title: ptr("Buy bread"), Description: ptr("")}.Apply(task)
		assert.Equal(t, "Buy bread", task.Title)
		assert.Equal(t, "", *task.Description)
		assert.False(t, task.Completed)
	})

	t.Run("empty patch", func(t *testing.T) {
		task := base()
		p := TaskPatch{}
		assert.True(t, p.Empty())
		p.Apply(task)
		assert.Equal(t, base(), task)
	})
}

func TestUser_PublicHasNoHash(t *testing.T) {
	u := &User{ID: "u1", Email: "a@x.com", FullName: "A A", PasswordHash: "$2a$10$abc"}
	assert.Equal(t, PublicUser{ID: "u1", Email: "a@x.com", FullName: "A A"}, u.Public())
}
