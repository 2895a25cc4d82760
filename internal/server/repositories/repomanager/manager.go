package repomanager

import (
	"context"
	"database/sql"

	"github.com/sanjaympqwer/TASK-MASTER/internal/dbx"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/tasks"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
