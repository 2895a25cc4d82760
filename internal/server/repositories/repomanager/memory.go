package repomanager

import (
	"context"
	"database/sql"

	"github.com/sanjaympqwer/TASK-MASTER/internal/dbx"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/tasks"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/users"
)

// MemoryRepositoryManager vends the shared in-memory repositories. The DBTX
// argument is ignored; there is no database underneath.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	tasks *tasks.MemoryRepository
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return m.tasks
}

// NewMemoryRepositoryManager constructs a RepositoryManager over in-memory
// collections. State lives for the life of the process only.
func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		tasks: tasks.NewMemoryRepository(),
	}
}
