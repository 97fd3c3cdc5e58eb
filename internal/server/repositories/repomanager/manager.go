package repomanager

import (
	"context"
	"database/sql"

	"github.com/pouchain/docstore/internal/dbx"
	"github.com/pouchain/docstore/internal/server/repositories/profiles"
	"github.com/pouchain/docstore/internal/server/repositories/rules"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Rules(db dbx.DBTX) rules.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
