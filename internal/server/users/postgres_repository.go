package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/attendo/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

const userColumns = `id, name, email, password_hash, phone, department, position, employee_id, join_date, work_schedule, role`

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (name, email, password_hash, phone, department, position, employee_id, join_date, work_schedule, role)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Phone, user.Department,
		user.Position, user.EmployeeID, user.JoinDate, user.WorkSchedule, user.Role).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, user *User) (*User, error) {
	query :=
		`UPDATE users
		 SET name = $2, email = $3, phone = $4, department = $5, position = $6, work_schedule = $7
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.Department, user.Position, user.WorkSchedule)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return r.GetByID(ctx, user.ID)
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, id string, role string) error {
	query := `UPDATE users SET role = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone,
		&user.Department, &user.Position, &user.EmployeeID, &user.JoinDate, &user.WorkSchedule, &user.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}
