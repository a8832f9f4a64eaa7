package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/attendo/internal/server/attendance"
	"github.com/dmitrijs2005/attendo/internal/server/migrations"
	"github.com/dmitrijs2005/attendo/internal/server/refreshtokens"
	"github.com/dmitrijs2005/attendo/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db            *sql.DB
	users         users.Repository
	refreshTokens refreshtokens.Repository
	attendance    attendance.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m *PostgresRepositoryManager) Attendance() attendance.Repository {
	return m.attendance
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	users, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	refreshTokens, err := refreshtokens.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("refresh token repo creation error: %w", err)
	}

	attendance, err := attendance.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("attendance repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:            db,
		users:         users,
		refreshTokens: refreshTokens,
		attendance:    attendance,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
