package services

import (
	"context"
	"database/sql"

	"github.com/sanjaympqwer/TASK-MASTER/internal/dbx"
)

// inTx runs fn inside a database transaction when a SQL store is configured.
// With the in-memory store there is no db handle, so fn runs directly and
// the repositories' own locking provides consistency.
func inTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, db, nil, fn)
}
