package refreshtokens

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID string) error
}
