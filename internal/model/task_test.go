package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskPatchApply(t *testing.T) {
	created := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	due := created.Add(48 * time.Hour)
	task := Task{
		ID:          "t1",
		Title:       "old title",
		Description: "old description",
		Completed:   false,
		CreatedAt:   created,
	}

	t.Run("empty patch is a no-op", func(t *testing.T) {
		got := task
		TaskPatch{}.Apply(&got)
		assert.Equal(t, task, got)
	})

	t.Run("set fields overwrite", func(t *testing.T) {
		got := task
		title := "new title"
		completed := true
		TaskPatch{Title: &title, Completed: &completed, DueDate: &due}.Apply(&got)

		assert.Equal(t, "new title", got.Title)
		assert.True(t, got.Completed)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, due, *got.DueDate)
		// Identity and unset fields stay put.
		assert.Equal(t, "t1", got.ID)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, "old description", got.Description)
	})

	t.Run("explicit false flips completed", func(t *testing.T) {
		got := task
		got.Completed = true
		completed := false
		TaskPatch{Completed: &completed}.Apply(&got)
		assert.False(t, got.Completed)
	})
}

func TestTaskJSONShape(t *testing.T) {
	created := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	task := Task{ID: "t1", Title: "write report", CreatedAt: created}

	b, err := json.Marshal(&task)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Contains(t, raw, "createdAt")
	assert.NotContains(t, raw, "dueDate")
	assert.NotContains(t, raw, "description")
	assert.Equal(t, false, raw["completed"])
}

func TestTaskPatchJSONOmitsUnset(t *testing.T) {
	title := "only title"
	b, err := json.Marshal(TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"only title"}`, string(b))
}
