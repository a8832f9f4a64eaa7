package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, mark *Mark) (*Mark, error) {

	query :=
		`INSERT INTO attendance_marks (user_id, kind, latitude, longitude, accuracy, address, recorded_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		mark.UserID, mark.Kind, mark.Latitude, mark.Longitude, mark.Accuracy,
		mark.Address, mark.RecordedAt).Scan(&mark.ID)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return mark, nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]Mark, error) {

	query :=
		`SELECT id, user_id, kind, latitude, longitude, accuracy, address, recorded_at
		 FROM attendance_marks
		 WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		 ORDER BY recorded_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var marks []Mark
	for rows.Next() {
		var m Mark
		err := rows.Scan(&m.ID, &m.UserID, &m.Kind, &m.Latitude, &m.Longitude,
			&m.Accuracy, &m.Address, &m.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		marks = append(marks, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}
