package tasks

import (
	"context"

	"github.com/sanjaympqwer/TASK-MASTER/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) (bool, error)
}
