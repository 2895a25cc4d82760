package tasks

import (
	"context"
	"sort"
	"sync"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
)

// MemoryRepository keeps tasks in process memory behind a RWMutex. It is the
// default store when no database DSN is configured and the store used by
// service tests. Not durable across restarts.
type MemoryRepository struct {
	mu    sync.RWMutex
	tasks []*models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *task
	r.tasks = append(r.tasks, &clone)
	return task, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tasks {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Task
	for _, t := range r.tasks {
		if t.CreatedBy == userID {
			clone := *t
			result = append(result, &clone)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tasks {
		if t.ID == task.ID {
			clone := *task
			r.tasks[i] = &clone
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
