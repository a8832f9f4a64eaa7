package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/attendo/internal/server/attendance"
	"github.com/dmitrijs2005/attendo/internal/server/refreshtokens"
	"github.com/dmitrijs2005/attendo/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Attendance() attendance.Repository
}
