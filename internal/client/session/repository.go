// Package session owns the locally persisted authentication state:
// a sqlite-backed key-value store plus a manager exposing observable
// session state to the rest of the CLI.
package session

import "context"

// Keys used in the local store. Access token, refresh token and the cached
// user record are always written and removed together.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserData     = "user_data"
)

// Repository is a string-keyed byte store for session material.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
