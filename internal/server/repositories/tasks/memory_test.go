package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
)

func addTask(t *testing.T, repo *MemoryRepository, id, userID string, createdAt time.Time) {
	t.Helper()
	_, err := repo.Create(context.Background(), &models.Task{
		ID:        id,
		Title:     "task " + id,
		Status:    models.StatusTodo,
		CreatedBy: userID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	require.NoError(t, err)
}

func TestMemory_ListByUser_ScopedAndOrdered(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	addTask(t, repo, "t-1", "u-1", base)
	addTask(t, repo, "t-2", "u-1", base.Add(time.Hour))
	addTask(t, repo, "t-3", "u-1", base.Add(2*time.Hour))
	addTask(t, repo, "other", "u-2", base.Add(3*time.Hour))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "t-3", got[0].ID)
	assert.Equal(t, "t-2", got[1].ID)
	assert.Equal(t, "t-1", got[2].ID)
}

func TestMemory_DeleteTwice(t *testing.T) {
	repo := NewMemoryRepository()
	addTask(t, repo, "t-1", "u-1", time.Now())

	ok, err := repo.Delete(context.Background(), "t-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), "t-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_UpdateMissing(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.Update(context.Background(), &models.Task{ID: "ghost"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_GetByIDReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	addTask(t, repo, "t-1", "u-1", time.Now())

	got, err := repo.GetByID(context.Background(), "t-1")
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := repo.GetByID(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "task t-1", again.Title)
}
