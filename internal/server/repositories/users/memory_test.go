package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
)

func TestMemory_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{ID: "u-1", Name: "Jane", Email: "jane@x.com"})
	require.NoError(t, err)

	byEmail, err := repo.GetByEmail(ctx, "JANE@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)

	byID, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", byID.Email)
}

func TestMemory_DuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{ID: "u-1", Email: "jane@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{ID: "u-2", Email: "Jane@X.com"})
	assert.ErrorIs(t, err, common.ErrorEmailTaken)
}

func TestMemory_GetMissing(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_Update(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := &models.User{ID: "u-1", Name: "Jane", Email: "jane@x.com"}
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	u.Name = "Jane Updated"
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Updated", got.Name)

	err = repo.Update(ctx, &models.User{ID: "ghost"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{ID: "u-1", Name: "Jane", Email: "jane@x.com"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.Name)
}
