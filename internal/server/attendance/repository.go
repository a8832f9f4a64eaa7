package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, mark *Mark) (*Mark, error)
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]Mark, error)
}
