package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/dbx"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/repomanager"
)

// TaskPatch carries the fields a task update may change. Nil fields are left
// as they are; CreatedAt and CreatedBy are never touched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskService provides validated CRUD over tasks, scoped to the owning user
// supplied by the caller's validated session.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
	}
}

func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters", common.ErrorValidation)
	}
	return nil
}

func validateStatus(status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: status must be one of todo, in-progress, done", common.ErrorValidation)
	}
	return nil
}

// List returns the user's tasks, most recently created first. The result is
// recomputed on every call.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Create validates the fields and appends a task owned by userID. The store
// is untouched when validation fails.
func (s *TaskService) Create(ctx context.Context, userID, title, description, status string) (*models.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      status,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %v", err)
	}
	return task, nil
}

// Update merges the patch onto the user's task and refreshes UpdatedAt.
// A task that does not exist and a task owned by someone else both report
// ErrorNotFound.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch TaskPatch) (*models.Task, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Status != nil {
		if err := validateStatus(*patch.Status); err != nil {
			return nil, err
		}
	}

	var task *models.Task
	err := inTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		var err error
		task, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if task.CreatedBy != userID {
			return common.ErrorNotFound
		}

		if patch.Title != nil {
			task.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		task.UpdatedAt = time.Now()

		return repo.Update(ctx, task)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return task, nil
}

// Delete removes the user's task with the given id. A missing id and a task
// owned by someone else both report success=false; neither is an error.
func (s *TaskService) Delete(ctx context.Context, userID, id string) (bool, error) {
	var deleted bool
	err := inTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return err
		}
		if task.CreatedBy != userID {
			return nil
		}

		deleted, err = repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, common.ErrorInternal
	}
	return deleted, nil
}
